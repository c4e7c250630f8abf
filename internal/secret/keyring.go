package secret

import "github.com/zx06/xkeyring/pkg/keyring"

// KeyringAPI 是对 OS keyring 的最小抽象，便于测试与跨平台。
// service 对应 keyring 的 service name，account 对应 user/account。
type KeyringAPI interface {
	Get(service, account string) (string, error)
	Set(service, account, value string) error
	Delete(service, account string) error
}

func defaultKeyring() KeyringAPI {
	return osKeyring{}
}

// osKeyring 走 pkg/keyring 的默认凭据（不带 target）。
type osKeyring struct{}

func (osKeyring) Get(service, account string) (string, error) {
	return keyring.NewEntry(service, account).GetPassword()
}

func (osKeyring) Set(service, account, value string) error {
	return keyring.NewEntry(service, account).SetPassword(value)
}

func (osKeyring) Delete(service, account string) error {
	return keyring.NewEntry(service, account).DeletePassword()
}
