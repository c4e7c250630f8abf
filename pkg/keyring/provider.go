package keyring

import "sync"

// provider is the capability set every platform backend exposes. Exactly one
// implementation is compiled per GOOS; see provider_*.go.
type provider interface {
	set(c *Credential, password string) error
	// get returns the password and the credential as re-read from the store.
	get(c *Credential) (string, *Credential, error)
	delete(c *Credential) error
}

var active provider = newPlatformProvider()

// MockInit replaces the platform provider with an empty in-memory store.
// It is meant for tests that must not touch the real keyring.
func MockInit() {
	active = &mockProvider{items: map[string]mockItem{}}
}

// MockInitWithError makes every operation fail with err, as if the platform
// store were unreachable. A non-keyring err is wrapped as a platform failure.
func MockInitWithError(err error) {
	active = &mockProvider{items: map[string]mockItem{}, err: err}
}

type mockItem struct {
	password string
	cred     *Credential
}

// mockProvider keys items by storageID, so it observes the same identity
// rules as the platform stores.
type mockProvider struct {
	mu    sync.Mutex
	items map[string]mockItem
	err   error
}

func (m *mockProvider) failure() error {
	if m.err == nil {
		return nil
	}
	if KindOf(m.err) != 0 {
		return m.err
	}
	return errPlatformFailure(m.err)
}

func (m *mockProvider) set(c *Credential, password string) error {
	if err := m.failure(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[c.storageID()] = mockItem{password: password, cred: c.Clone()}
	return nil
}

func (m *mockProvider) get(c *Credential) (string, *Credential, error) {
	if err := m.failure(); err != nil {
		return "", nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[c.storageID()]
	if !ok {
		return "", nil, errNoEntry()
	}
	return item.password, item.cred.Clone(), nil
}

func (m *mockProvider) delete(c *Credential) error {
	if err := m.failure(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := c.storageID()
	if _, ok := m.items[id]; !ok {
		return errNoEntry()
	}
	delete(m.items, id)
	return nil
}
