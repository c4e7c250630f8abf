package errors

// ExitCode 是进程退出码（稳定契约）。
type ExitCode int

const (
	ExitOK ExitCode = 0

	// 2: 参数/配置错误
	ExitConfig ExitCode = 2

	// 3: keyring 中没有该条目（预期内的结果，非故障）
	ExitNoEntry ExitCode = 3

	// 4: 输入被平台拒绝（编码/长度/非法字符），不改输入重试无意义
	ExitRejected ExitCode = 4

	// 5: 平台存储故障（D-Bus、钥匙串、凭据管理器）
	ExitPlatform ExitCode = 5

	// 10: 内部错误
	ExitInternal ExitCode = 10
)

func ExitCodeFor(code Code) ExitCode {
	switch code {
	case CodeCfgNotFound, CodeCfgInvalid, CodeSecretNotFound:
		return ExitConfig
	case CodeNoEntry:
		return ExitNoEntry
	case CodeBadEncoding, CodeTooLong, CodeInvalid:
		return ExitRejected
	case CodePlatformFailure:
		return ExitPlatform
	case CodeInternal:
		fallthrough
	default:
		return ExitInternal
	}
}
