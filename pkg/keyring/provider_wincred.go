//go:build windows

package keyring

import "github.com/danieljoos/wincred"

const currentPlatform = PlatformWinCred

type winCredProvider struct{}

func newPlatformProvider() provider {
	return winCredProvider{}
}

func (winCredProvider) set(c *Credential, password string) error {
	wc := c.WinCred
	if wc == nil {
		return errInvalid("credential", "not a Windows credential")
	}
	if err := validateWinCredential(wc, password); err != nil {
		return err
	}
	cred := wincred.NewGenericCredential(wc.TargetName)
	cred.UserName = wc.Username
	cred.TargetAlias = wc.TargetAlias
	cred.Comment = wc.Comment
	cred.CredentialBlob = encodeUTF16LE(password)
	cred.Persist = wincred.PersistEnterprise
	return decodeWinError(cred.Write())
}

func (winCredProvider) get(c *Credential) (string, *Credential, error) {
	wc := c.WinCred
	if wc == nil {
		return "", nil, errInvalid("credential", "not a Windows credential")
	}
	cred, err := wincred.GetGenericCredential(wc.TargetName)
	if err != nil {
		return "", nil, decodeWinError(err)
	}
	password, err := decodeUTF16LE(cred.CredentialBlob)
	if err != nil {
		return "", nil, err
	}
	return password, &Credential{Platform: PlatformWinCred, WinCred: &WinCredential{
		Username:    cred.UserName,
		TargetName:  cred.TargetName,
		TargetAlias: cred.TargetAlias,
		Comment:     cred.Comment,
	}}, nil
}

func (winCredProvider) delete(c *Credential) error {
	wc := c.WinCred
	if wc == nil {
		return errInvalid("credential", "not a Windows credential")
	}
	cred, err := wincred.GetGenericCredential(wc.TargetName)
	if err != nil {
		return decodeWinError(err)
	}
	return decodeWinError(cred.Delete())
}
