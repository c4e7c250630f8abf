package keyring

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Platform tags which provider a Credential is addressed to.
type Platform string

const (
	PlatformSecretService Platform = "secret-service"
	PlatformWinCred       Platform = "wincred"
	PlatformKeychain      Platform = "keychain"
	PlatformUnsupported   Platform = "unsupported"
)

// Current returns the platform whose provider is compiled into this binary.
func Current() Platform {
	return currentPlatform
}

// Secret Service attribute names written on every default credential.
const (
	AttrService     = "service"
	AttrUsername    = "username"
	AttrApplication = "application"

	applicationName   = "xkeyring"
	defaultCollection = "default"
)

// SecretServiceCredential addresses an item by attribute lookup inside a
// collection. An empty or "default" collection means the login alias.
type SecretServiceCredential struct {
	Collection string            `json:"collection" yaml:"collection"`
	Attributes map[string]string `json:"attributes" yaml:"attributes"`
	Label      string            `json:"label" yaml:"label"`
}

// WinCredential addresses a generic credential by its target name alone; the
// other fields are metadata written alongside the blob.
type WinCredential struct {
	Username    string `json:"username" yaml:"username"`
	TargetName  string `json:"target_name" yaml:"target_name"`
	TargetAlias string `json:"target_alias,omitempty" yaml:"target_alias,omitempty"`
	Comment     string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// KeychainDomain selects which macOS keychain holds the item.
type KeychainDomain string

const (
	DomainUser    KeychainDomain = "user"
	DomainSystem  KeychainDomain = "system"
	DomainCommon  KeychainDomain = "common"
	DomainDynamic KeychainDomain = "dynamic"
)

// ParseKeychainDomain accepts a domain name case-insensitively.
func ParseKeychainDomain(s string) (KeychainDomain, bool) {
	switch d := KeychainDomain(strings.ToLower(strings.TrimSpace(s))); d {
	case DomainUser, DomainSystem, DomainCommon, DomainDynamic:
		return d, true
	default:
		return "", false
	}
}

// KeychainCredential addresses a generic password item.
type KeychainCredential struct {
	Domain  KeychainDomain `json:"domain" yaml:"domain"`
	Service string         `json:"service" yaml:"service"`
	Account string         `json:"account" yaml:"account"`
}

// Credential is the platform key for one identity. Exactly one payload is set,
// matching Platform.
type Credential struct {
	Platform      Platform                 `json:"platform" yaml:"platform"`
	SecretService *SecretServiceCredential `json:"secret_service,omitempty" yaml:"secret_service,omitempty"`
	WinCred       *WinCredential           `json:"wincred,omitempty" yaml:"wincred,omitempty"`
	Keychain      *KeychainCredential      `json:"keychain,omitempty" yaml:"keychain,omitempty"`
}

// DefaultCredential derives the platform key for (service, account). An empty
// target selects the platform default; otherwise it names the collection
// (Secret Service), the literal target name (Windows) or the keychain domain.
func DefaultCredential(p Platform, target, service, account string) *Credential {
	label := describe(target, service, account)
	switch p {
	case PlatformSecretService:
		collection := target
		if collection == "" {
			collection = defaultCollection
		}
		return &Credential{Platform: p, SecretService: &SecretServiceCredential{
			Collection: collection,
			Attributes: map[string]string{
				AttrService:     service,
				AttrUsername:    account,
				AttrApplication: applicationName,
			},
			Label: label,
		}}
	case PlatformWinCred:
		name := target
		if name == "" {
			name = winTargetName(service, account)
		}
		return &Credential{Platform: p, WinCred: &WinCredential{
			Username:   account,
			TargetName: name,
			Comment:    label,
		}}
	default:
		domain, ok := ParseKeychainDomain(target)
		if !ok {
			domain = DomainUser
		}
		return &Credential{Platform: p, Keychain: &KeychainCredential{
			Domain:  domain,
			Service: service,
			Account: account,
		}}
	}
}

func describe(target, service, account string) string {
	kind := "entry"
	if target != "" {
		kind = "custom entry"
	}
	return fmt.Sprintf("%s %s for service '%s', user '%s'", applicationName, kind, service, account)
}

var winAccountEscaper = strings.NewReplacer("%", "%25", ".", "%2E")

// winTargetName joins account and service with a dot. Dots in the account are
// escaped so the first dot always separates the two halves.
func winTargetName(service, account string) string {
	return winAccountEscaper.Replace(account) + "." + service
}

// MatchesPlatform reports whether c carries the payload p's provider reads.
func (c *Credential) MatchesPlatform(p Platform) bool {
	if c == nil || c.Platform != p {
		return false
	}
	switch p {
	case PlatformSecretService:
		return c.SecretService != nil
	case PlatformWinCred:
		return c.WinCred != nil
	default:
		return c.Keychain != nil
	}
}

// Clone returns a deep copy.
func (c *Credential) Clone() *Credential {
	if c == nil {
		return nil
	}
	out := &Credential{Platform: c.Platform}
	if c.SecretService != nil {
		ss := *c.SecretService
		ss.Attributes = maps.Clone(c.SecretService.Attributes)
		out.SecretService = &ss
	}
	if c.WinCred != nil {
		wc := *c.WinCred
		out.WinCred = &wc
	}
	if c.Keychain != nil {
		kc := *c.Keychain
		out.Keychain = &kc
	}
	return out
}

// storageID renders the fields the platform uses to locate an item. Two
// credentials with equal IDs address the same stored secret.
func (c *Credential) storageID() string {
	switch {
	case c.SecretService != nil:
		ss := c.SecretService
		collection := ss.Collection
		if collection == "" {
			collection = defaultCollection
		}
		parts := []string{string(PlatformSecretService), strconv.Quote(collection)}
		for _, k := range slices.Sorted(maps.Keys(ss.Attributes)) {
			parts = append(parts, strconv.Quote(k)+"="+strconv.Quote(ss.Attributes[k]))
		}
		return strings.Join(parts, ",")
	case c.WinCred != nil:
		return string(PlatformWinCred) + "," + strconv.Quote(c.WinCred.TargetName)
	case c.Keychain != nil:
		kc := c.Keychain
		return strings.Join([]string{string(PlatformKeychain), string(kc.Domain), strconv.Quote(kc.Service), strconv.Quote(kc.Account)}, ",")
	default:
		return ""
	}
}
