package errors

// Code 是稳定错误码（字符串），供 AI/agent 与程序判断。
// 只增不改、不复用旧含义。
type Code string

const (
	// Config / args
	CodeCfgNotFound    Code = "XKEYRING_CFG_NOT_FOUND"
	CodeCfgInvalid     Code = "XKEYRING_CFG_INVALID"
	CodeSecretNotFound Code = "XKEYRING_SECRET_NOT_FOUND"

	// Keyring，与 keyring.Kind 一一对应
	CodeNoEntry         Code = "XKEYRING_NO_ENTRY"
	CodeBadEncoding     Code = "XKEYRING_BAD_ENCODING"
	CodeTooLong         Code = "XKEYRING_TOO_LONG"
	CodeInvalid         Code = "XKEYRING_INVALID"
	CodePlatformFailure Code = "XKEYRING_PLATFORM_FAILURE"

	// Internal
	CodeInternal Code = "XKEYRING_INTERNAL"
)

func AllCodes() []Code {
	return []Code{
		CodeCfgNotFound,
		CodeCfgInvalid,
		CodeSecretNotFound,
		CodeNoEntry,
		CodeBadEncoding,
		CodeTooLong,
		CodeInvalid,
		CodePlatformFailure,
		CodeInternal,
	}
}
