package errors

import (
	stderrors "errors"

	"github.com/zx06/xkeyring/pkg/keyring"
)

// FromKeyring 把 keyring 错误按 Kind 映射为 XError。
// Details 只带字段名/上限/原因，不带密码或原始字节。
func FromKeyring(err error, details map[string]any) *XError {
	if err == nil {
		return nil
	}
	if xe, ok := As(err); ok {
		return xe
	}
	if details == nil {
		details = map[string]any{}
	}
	var ke *keyring.Error
	if !stderrors.As(err, &ke) {
		return Wrap(CodeInternal, err.Error(), details, err)
	}
	switch ke.Kind {
	case keyring.KindNoEntry:
		return Wrap(CodeNoEntry, "no matching entry in keyring", details, err)
	case keyring.KindBadEncoding:
		details["size"] = len(ke.Data)
		return Wrap(CodeBadEncoding, "stored password is not valid text", details, err)
	case keyring.KindTooLong:
		details["field"] = ke.Field
		details["limit"] = ke.Limit
		return Wrap(CodeTooLong, "value exceeds platform limit", details, err)
	case keyring.KindInvalid:
		details["field"] = ke.Field
		details["reason"] = ke.Reason
		return Wrap(CodeInvalid, "value rejected by platform store", details, err)
	default:
		return Wrap(CodePlatformFailure, "platform secure storage failure", details, err)
	}
}
