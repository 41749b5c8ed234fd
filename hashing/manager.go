package hashing

import (
	"fmt"
	"sync"
)

// Manager is a thread-safe registry of named [Hasher] drivers with one
// default driver.
//
// A [sync.RWMutex] serialises RegisterDriver and SetDefaultDriver while
// Make, Check and friends run concurrently.
type Manager struct {
	mu      sync.RWMutex
	drivers map[DriverName]Hasher
	def     DriverName
}

// NewManager creates an empty Manager whose default is defaultDriver.  The
// driver must be registered before Make or Check is called.
func NewManager(defaultDriver DriverName) *Manager {
	return &Manager{
		drivers: make(map[DriverName]Hasher),
		def:     defaultDriver,
	}
}

// NewDefaultManager registers FSHP (default), bcrypt and Argon2id with their
// default options.
func NewDefaultManager() (*Manager, error) {
	return NewManagerWithOptions(DefaultFSHPOptions())
}

// NewManagerWithOptions is [NewDefaultManager] with custom FSHP options.
func NewManagerWithOptions(opts FSHPOptions) (*Manager, error) {
	fshpH, err := NewFSHPHasher(opts)
	if err != nil {
		return nil, fmt.Errorf("hashing: failed to create fshp hasher: %w", err)
	}
	bcryptH, err := NewBcryptHasher(DefaultBcryptOptions())
	if err != nil {
		return nil, fmt.Errorf("hashing: failed to create bcrypt hasher: %w", err)
	}
	argon2idH, err := NewArgon2idHasher(DefaultArgon2idOptions())
	if err != nil {
		return nil, fmt.Errorf("hashing: failed to create argon2id hasher: %w", err)
	}

	m := NewManager(DriverFSHP)
	_ = m.RegisterDriver(DriverFSHP, fshpH)
	_ = m.RegisterDriver(DriverBcrypt, bcryptH)
	_ = m.RegisterDriver(DriverArgon2id, argon2idH)
	return m, nil
}

// RegisterDriver adds or replaces the hasher registered under name.
func (m *Manager) RegisterDriver(name DriverName, h Hasher) error {
	if name == "" {
		return ErrEmptyDriverName
	}
	if h == nil {
		return ErrNilHasher
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[name] = h
	return nil
}

// Driver returns the hasher registered under name.
func (m *Manager) Driver(name DriverName) (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.drivers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDriverNotFound, name)
	}
	return h, nil
}

// SetDefaultDriver changes the default.  name must already be registered.
func (m *Manager) SetDefaultDriver(name DriverName) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[name]; !ok {
		return fmt.Errorf("%w: %q is not registered", ErrDriverNotFound, name)
	}
	m.def = name
	return nil
}

// DefaultDriver returns the name of the default driver.
func (m *Manager) DefaultDriver() DriverName {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.def
}

// HasDriver reports whether name is registered.
func (m *Manager) HasDriver(name DriverName) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.drivers[name]
	return ok
}

// Make hashes password with the default driver.
func (m *Manager) Make(password string) (string, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return "", err
	}
	return h.Make(password)
}

// Check verifies password with the default driver.  Use
// [Manager.CheckWithDetect] when hashes from several drivers coexist.
func (m *Manager) Check(password, hash string) (bool, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return false, err
	}
	return h.Check(password, hash)
}

// CheckWithDetect verifies password with the driver detected from the hash
// prefix.  It returns [ErrInvalidHash] for an unknown prefix and
// [ErrDriverNotFound] when the detected driver is not registered.
func (m *Manager) CheckWithDetect(password, hash string) (bool, error) {
	h, err := m.resolveByHash(hash)
	if err != nil {
		return false, err
	}
	return h.Check(password, hash)
}

// NeedsRehash reports whether hash should be replaced by a fresh
// [Manager.Make]: either it came from another driver than the default, or
// the default driver reports different parameters.
func (m *Manager) NeedsRehash(hash string) (bool, error) {
	detected, ok := DetectDriver(hash)
	if !ok {
		return false, ErrInvalidHash
	}
	if detected != m.DefaultDriver() {
		return true, nil
	}
	h, err := m.Driver(detected)
	if err != nil {
		return false, err
	}
	return h.NeedsRehash(hash)
}

// Info extracts metadata from hash with the default driver.
func (m *Manager) Info(hash string) (HashInfo, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return HashInfo{}, err
	}
	return h.Info(hash)
}

// InfoWithDetect extracts metadata from hash with the detected driver.
func (m *Manager) InfoWithDetect(hash string) (HashInfo, error) {
	h, err := m.resolveByHash(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return h.Info(hash)
}

func (m *Manager) resolveDefault() (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.drivers[m.def]
	if !ok {
		return nil, fmt.Errorf("%w: default driver %q has not been registered",
			ErrDriverNotFound, m.def)
	}
	return h, nil
}

func (m *Manager) resolveByHash(hash string) (Hasher, error) {
	name, ok := DetectDriver(hash)
	if !ok {
		return nil, ErrInvalidHash
	}
	return m.Driver(name)
}
