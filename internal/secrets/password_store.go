package secrets

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/99designs/keyring"
)

const serviceName = "lazyfilter"

// ErrPasswordNotFound is returned when no password is stored for a credential
var ErrPasswordNotFound = errors.New("password not found in keyring")

// Credential identifies the database login a password belongs to
type Credential struct {
	Driver   string
	Host     string
	Port     int
	Database string
	User     string
}

// key format: "driver://user@host:port/database"
func (c Credential) key() string {
	return fmt.Sprintf("%s://%s@%s:%d/%s", c.Driver, c.User, c.Host, c.Port, c.Database)
}

// PasswordStore keeps option source passwords in the OS keyring, falling back
// to an encrypted file where no keyring service is available
type PasswordStore struct {
	ring          keyring.Keyring
	usingFallback bool
}

// NewPasswordStore opens the keyring with the backends suited to this OS
func NewPasswordStore(configDir string) (*PasswordStore, error) {
	backends := backendsForPlatform()

	ring, err := keyring.Open(keyring.Config{
		ServiceName:     serviceName,
		AllowedBackends: backends,
		FileDir:         filepath.Join(configDir, "keyring"),
		FilePasswordFunc: func(_ string) (string, error) {
			return deriveFilePassword()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return &PasswordStore{
		ring:          ring,
		usingFallback: onlyFileBackend(backends),
	}, nil
}

// NewPasswordStoreWithRing wraps an already opened keyring
func NewPasswordStoreWithRing(ring keyring.Keyring) *PasswordStore {
	return &PasswordStore{ring: ring}
}

func backendsForPlatform() []keyring.BackendType {
	switch runtime.GOOS {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend, keyring.FileBackend}
	case "linux":
		return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.FileBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend, keyring.FileBackend}
	default:
		return []keyring.BackendType{keyring.FileBackend}
	}
}

// onlyFileBackend reports whether no native keyring can serve the store
func onlyFileBackend(requested []keyring.BackendType) bool {
	if len(requested) == 1 && requested[0] == keyring.FileBackend {
		return true
	}
	for _, b := range keyring.AvailableBackends() {
		if b != keyring.FileBackend {
			return false
		}
	}
	return true
}

// IsUsingFallback reports whether passwords live in the file backend
func (ps *PasswordStore) IsUsingFallback() bool {
	return ps.usingFallback
}

// Save stores a password. Empty passwords are not stored.
func (ps *PasswordStore) Save(c Credential, password string) error {
	if password == "" {
		return nil
	}

	err := ps.ring.Set(keyring.Item{
		Key:         c.key(),
		Data:        []byte(password),
		Label:       fmt.Sprintf("lazyfilter: %s@%s/%s", c.User, c.Host, c.Database),
		Description: "Option source password for lazyfilter",
	})
	if err != nil {
		return fmt.Errorf("failed to save password to keyring: %w", err)
	}
	return nil
}

// Get returns the stored password, or ErrPasswordNotFound
func (ps *PasswordStore) Get(c Credential) (string, error) {
	item, err := ps.ring.Get(c.key())
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrPasswordNotFound
		}
		return "", fmt.Errorf("failed to read password from keyring: %w", err)
	}
	return string(item.Data), nil
}

// Delete removes a stored password. Missing passwords are not an error.
func (ps *PasswordStore) Delete(c Credential) error {
	err := ps.ring.Remove(c.key())
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}
	return nil
}
