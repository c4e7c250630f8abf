package secret

import (
	"strings"

	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/pkg/keyring"
)

const keyringPrefix = "keyring:"

// DefaultService 是 keyring:<account> 形式引用使用的 service。
const DefaultService = "xkeyring"

// Options 控制 secret 解析行为。
type Options struct {
	AllowPlaintext bool       // 是否允许明文（默认 false）
	Keyring        KeyringAPI // 可注入的 keyring 实现（nil 则用默认）
}

// Resolve 解析 secret 值：
//  1. keyring:<service>/<account> 或 keyring:<account> → 从 keyring 读取
//  2. 否则若为明文且允许明文 → 直接返回
//  3. 否则报错
func Resolve(raw string, opts Options) (string, *errors.XError) {
	if strings.HasPrefix(raw, keyringPrefix) {
		service, account, xe := parseKeyringRef(strings.TrimPrefix(raw, keyringPrefix))
		if xe != nil {
			return "", xe
		}
		kr := opts.Keyring
		if kr == nil {
			kr = defaultKeyring()
		}
		val, err := kr.Get(service, account)
		if err != nil {
			details := map[string]any{"service": service, "account": account}
			// 找不到或非 keyring 错误统一视为 secret 缺失；其余保留 keyring 的分类
			if keyring.IsNoEntry(err) || keyring.KindOf(err) == 0 {
				return "", errors.Wrap(errors.CodeSecretNotFound, "failed to read secret from keyring", details, err)
			}
			return "", errors.FromKeyring(err, details)
		}
		return val, nil
	}
	// 明文
	if opts.AllowPlaintext {
		return raw, nil
	}
	return "", errors.New(errors.CodeCfgInvalid, "plaintext secret not allowed; use a keyring: reference", nil)
}

// parseKeyringRef 以第一个 "/" 切分 service 与 account；无 "/" 时用 DefaultService。
func parseKeyringRef(ref string) (string, string, *errors.XError) {
	service, account, found := strings.Cut(ref, "/")
	if !found {
		service, account = DefaultService, ref
	}
	if service == "" || account == "" {
		return "", "", errors.New(errors.CodeCfgInvalid, "invalid keyring reference",
			map[string]any{"ref": keyringPrefix + ref, "expected": "keyring:<service>/<account> or keyring:<account>"})
	}
	return service, account, nil
}

// IsKeyringRef 判断值是否为 keyring 引用。
func IsKeyringRef(s string) bool {
	return strings.HasPrefix(s, keyringPrefix)
}
