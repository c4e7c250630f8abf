package keyring

// Limits from wincred.h, in UTF-16 code units except the blob, which is bytes.
const (
	winMaxUsernameLength   = 513
	winMaxTargetNameLength = 32767
	winMaxStringLength     = 256
	winMaxBlobSize         = 5 * 512
)

// validateWinCredential enforces the Credential Manager limits before any
// call is made, so overlong input surfaces as KindTooLong.
func validateWinCredential(c *WinCredential, password string) error {
	if utf16Len(c.Username) > winMaxUsernameLength {
		return errTooLong("username", winMaxUsernameLength)
	}
	if utf16Len(c.TargetName) > winMaxTargetNameLength {
		return errTooLong("target", winMaxTargetNameLength)
	}
	if utf16Len(c.TargetAlias) > winMaxStringLength {
		return errTooLong("target alias", winMaxStringLength)
	}
	if utf16Len(c.Comment) > winMaxStringLength {
		return errTooLong("comment", winMaxStringLength)
	}
	if 2*utf16Len(password) > winMaxBlobSize {
		return errTooLong("password", winMaxBlobSize)
	}
	return nil
}
