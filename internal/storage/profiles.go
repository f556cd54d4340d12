package storage

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/jump-quest/internal/core"
)

// KeyEnv names the environment variable holding the base64 save key.
const KeyEnv = "JUMPQUEST_SAVE_KEY"

// blobVersion is the first byte of every save file.
const blobVersion = 1

var (
	// ErrNoProfile is returned when a slot has never been saved.
	ErrNoProfile = errors.New("storage: no profile in slot")
	// ErrMissingKey is returned when no save key is configured.
	ErrMissingKey = errors.New("storage: save key not set")
	// ErrBadKey is returned for a key that is not 32 bytes of base64.
	ErrBadKey = errors.New("storage: save key must be 32 bytes, base64 encoded")
	// ErrCorrupt is returned when a save file fails to decrypt or parse.
	ErrCorrupt = errors.New("storage: save file is corrupt")
	// ErrBadSlot is returned for a slot outside the configured range.
	ErrBadSlot = errors.New("storage: slot out of range")
)

// KeyFromEnv reads and decodes the save key from the named variable.
func KeyFromEnv(name string) ([]byte, error) {
	v := os.Getenv(name)
	if v == "" {
		return nil, ErrMissingKey
	}
	return DecodeKey(v)
}

// DecodeKey decodes a base64 save key.
func DecodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, ErrBadKey
	}
	return key, nil
}

// GenerateKey returns a fresh random key, base64 encoded.
func GenerateKey() (string, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("storage: cannot generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// FileStore keeps save slots as encrypted files named profile_N.dat.
// Each file is a version byte, a 12-byte nonce and the
// ChaCha20-Poly1305 sealed YAML profile.
type FileStore struct {
	dir   string
	key   []byte
	slots int
}

var _ core.ProfileStore = (*FileStore)(nil)

// NewFileStore opens a profile directory, creating it if needed.
func NewFileStore(dir string, key []byte, slots int) (*FileStore, error) {
	if len(key) == 0 {
		return nil, ErrMissingKey
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrBadKey
	}
	if slots <= 0 {
		slots = 3
	}
	dir, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, key: append([]byte(nil), key...), slots: slots}, nil
}

// Slots returns the number of save slots.
func (f *FileStore) Slots() int {
	return f.slots
}

func (f *FileStore) path(slot int) (string, error) {
	if slot < 0 || slot >= f.slots {
		return "", fmt.Errorf("%w: %d", ErrBadSlot, slot)
	}
	return filepath.Join(f.dir, fmt.Sprintf("profile_%d.dat", slot)), nil
}

// Save encrypts p into slot, replacing the file atomically.
func (f *FileStore) Save(slot int, p core.Profile) error {
	path, err := f.path(slot)
	if err != nil {
		return err
	}

	plain, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("storage: cannot encode profile: %w", err)
	}
	blob, err := f.seal(plain)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, "profile_*.tmp")
	if err != nil {
		return fmt.Errorf("storage: cannot write profile: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("storage: cannot write profile: %w", err)
	}
	return nil
}

// Load decrypts the profile in slot.
func (f *FileStore) Load(slot int) (core.Profile, error) {
	path, err := f.path(slot)
	if err != nil {
		return core.Profile{}, err
	}

	blob, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.Profile{}, ErrNoProfile
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("storage: cannot read profile: %w", err)
	}

	plain, err := f.open(blob)
	if err != nil {
		return core.Profile{}, err
	}

	var p core.Profile
	if err := yaml.Unmarshal(plain, &p); err != nil {
		return core.Profile{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return p, nil
}

// Exists reports whether slot holds a save file.
func (f *FileStore) Exists(slot int) bool {
	path, err := f.path(slot)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Delete removes the save in slot. Deleting an empty slot is not an error.
func (f *FileStore) Delete(slot int) error {
	path, err := f.path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: cannot delete profile: %w", err)
	}
	return nil
}

// List describes every slot.
func (f *FileStore) List() []core.SlotInfo {
	out := make([]core.SlotInfo, f.slots)
	for i := range out {
		out[i].Slot = i
		if !f.Exists(i) {
			continue
		}
		out[i].Exists = true
		out[i].Profile, out[i].Err = f.Load(i)
	}
	return out
}

func (f *FileStore) seal(plain []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(f.key)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot init cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("storage: cannot generate nonce: %w", err)
	}

	blob := make([]byte, 0, 1+len(nonce)+len(plain)+aead.Overhead())
	blob = append(blob, blobVersion)
	blob = append(blob, nonce...)
	return aead.Seal(blob, nonce, plain, nil), nil
}

func (f *FileStore) open(blob []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(f.key)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot init cipher: %w", err)
	}
	n := aead.NonceSize()
	if len(blob) < 1+n+aead.Overhead() || blob[0] != blobVersion {
		return nil, ErrCorrupt
	}
	plain, err := aead.Open(nil, blob[1:1+n], blob[1+n:], nil)
	if err != nil {
		return nil, ErrCorrupt
	}
	return plain, nil
}
