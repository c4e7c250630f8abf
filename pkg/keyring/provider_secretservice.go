//go:build linux || freebsd || openbsd || netbsd || dragonfly

package keyring

import (
	"fmt"
	"maps"

	dbus "github.com/godbus/dbus/v5"
	ss "github.com/zalando/go-keyring/secret_service"
)

const currentPlatform = PlatformSecretService

const (
	secretsBusName     = "org.freedesktop.secrets"
	itemLabelProp      = "org.freedesktop.Secret.Item.Label"
	itemAttributesProp = "org.freedesktop.Secret.Item.Attributes"
	collectionsProp    = "org.freedesktop.Secret.Service.Collections"
	servicePath        = "/org/freedesktop/secrets"
	collectionPathBase = "/org/freedesktop/secrets/collection/"
)

// secretServiceProvider opens a fresh D-Bus session per call; nothing is
// held between operations.
type secretServiceProvider struct{}

func newPlatformProvider() provider {
	return secretServiceProvider{}
}

func checkSecretService(c *Credential) (*SecretServiceCredential, error) {
	sc := c.SecretService
	if sc == nil {
		return nil, errInvalid("credential", "not a Secret Service credential")
	}
	if err := validateSecretService(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// openCollection resolves the default alias or a named collection and
// unlocks it. See collectionLookup for how a missing named collection is
// reported.
func openCollection(svc *ss.SecretService, name string, forWrite bool) (dbus.BusObject, error) {
	var collection dbus.BusObject
	if name == "" || name == defaultCollection {
		collection = svc.GetLoginCollection()
	} else {
		v, readErr := svc.Object(secretsBusName, servicePath).GetProperty(collectionsProp)
		var paths []dbus.ObjectPath
		if readErr == nil {
			var ok bool
			if paths, ok = v.Value().([]dbus.ObjectPath); !ok {
				readErr = fmt.Errorf("unexpected %s type %T", collectionsProp, v.Value())
			}
		}
		if err := collectionLookup(paths, readErr, name, forWrite); err != nil {
			return nil, err
		}
		collection = svc.GetCollection(name)
	}
	if err := svc.Unlock(collection.Path()); err != nil {
		return nil, decodeDBusError(err)
	}
	return collection, nil
}

func (secretServiceProvider) set(c *Credential, password string) error {
	sc, err := checkSecretService(c)
	if err != nil {
		return err
	}
	svc, err := ss.NewSecretService()
	if err != nil {
		return decodeDBusError(err)
	}
	session, err := svc.OpenSession()
	if err != nil {
		return decodeDBusError(err)
	}
	defer svc.Close(session)

	collection, err := openCollection(svc, sc.Collection, true)
	if err != nil {
		return err
	}
	secret := ss.NewSecret(session.Path(), password)
	// CreateItem replaces an item with identical attributes.
	if err := svc.CreateItem(collection, sc.Label, sc.Attributes, secret); err != nil {
		return decodeDBusError(err)
	}
	return nil
}

// findItem returns the first item matching all attributes. Several matches
// can only come from other writers; the store's order decides.
func findItem(svc *ss.SecretService, sc *SecretServiceCredential) (dbus.ObjectPath, error) {
	collection, err := openCollection(svc, sc.Collection, false)
	if err != nil {
		return "", err
	}
	results, err := svc.SearchItems(collection, sc.Attributes)
	if err != nil {
		return "", decodeDBusError(err)
	}
	if len(results) == 0 {
		return "", errNoEntry()
	}
	return results[0], nil
}

func (secretServiceProvider) get(c *Credential) (string, *Credential, error) {
	sc, err := checkSecretService(c)
	if err != nil {
		return "", nil, err
	}
	svc, err := ss.NewSecretService()
	if err != nil {
		return "", nil, decodeDBusError(err)
	}
	session, err := svc.OpenSession()
	if err != nil {
		return "", nil, decodeDBusError(err)
	}
	defer svc.Close(session)

	item, err := findItem(svc, sc)
	if err != nil {
		return "", nil, err
	}
	if err := svc.Unlock(item); err != nil {
		return "", nil, decodeDBusError(err)
	}
	secret, err := svc.GetSecret(item, session.Path())
	if err != nil {
		return "", nil, decodeDBusError(err)
	}
	password, err := decodePassword(secret.Value)
	if err != nil {
		return "", nil, err
	}
	return password, readItemCredential(svc, item, sc), nil
}

// readItemCredential reports the item's stored label and attributes,
// falling back to the requested values if the properties can't be read.
func readItemCredential(svc *ss.SecretService, item dbus.ObjectPath, requested *SecretServiceCredential) *Credential {
	out := &SecretServiceCredential{
		Collection: requested.Collection,
		Attributes: maps.Clone(requested.Attributes),
		Label:      requested.Label,
	}
	obj := svc.Object(secretsBusName, item)
	if v, err := obj.GetProperty(itemLabelProp); err == nil {
		if label, ok := v.Value().(string); ok {
			out.Label = label
		}
	}
	if v, err := obj.GetProperty(itemAttributesProp); err == nil {
		if attrs, ok := v.Value().(map[string]string); ok {
			out.Attributes = attrs
		}
	}
	return &Credential{Platform: PlatformSecretService, SecretService: out}
}

func (secretServiceProvider) delete(c *Credential) error {
	sc, err := checkSecretService(c)
	if err != nil {
		return err
	}
	svc, err := ss.NewSecretService()
	if err != nil {
		return decodeDBusError(err)
	}
	item, err := findItem(svc, sc)
	if err != nil {
		return err
	}
	if err := svc.Delete(item); err != nil {
		return decodeDBusError(err)
	}
	return nil
}
