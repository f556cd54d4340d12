package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/jump-quest/internal/core"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir(), testKey(7), 3)
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}
	return fs
}

func sampleProfile() core.Profile {
	return core.Profile{
		CurrentLevel:      2,
		UnlockedLevels:    []bool{true, true, false, false, false},
		Lives:             2,
		Score:             1550,
		CoinsCollected:    4,
		TotalCoins:        15,
		TimeRemaining:     182.5,
		TimeTaken:         117.5,
		Timestamp:         time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		LastCheckpoint:    &core.Point{X: 1200, Y: 490},
		PlayerName:        "Ana",
		TutorialCompleted: true,
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := newTestFileStore(t)
	want := sampleProfile()

	if err := fs.Save(1, want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, err := fs.Load(1)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if got.CurrentLevel != want.CurrentLevel || got.Score != want.Score || got.PlayerName != want.PlayerName {
		t.Errorf("Load() = %+v, expected %+v", got, want)
	}
	if got.LastCheckpoint == nil || *got.LastCheckpoint != *want.LastCheckpoint {
		t.Errorf("checkpoint = %v, expected %v", got.LastCheckpoint, want.LastCheckpoint)
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Errorf("timestamp = %v, expected %v", got.Timestamp, want.Timestamp)
	}
	if len(got.UnlockedLevels) != 5 || !got.UnlockedLevels[1] {
		t.Errorf("unlocked = %v", got.UnlockedLevels)
	}
}

func TestFileStoreFileIsEncrypted(t *testing.T) {
	fs := newTestFileStore(t)
	if err := fs.Save(0, sampleProfile()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	blob, err := os.ReadFile(filepath.Join(fs.dir, "profile_0.dat"))
	if err != nil {
		t.Fatal(err)
	}
	if blob[0] != blobVersion {
		t.Errorf("version byte = %d, expected %d", blob[0], blobVersion)
	}
	if bytes.Contains(blob, []byte("Ana")) {
		t.Error("save file contains plaintext")
	}
}

func TestFileStoreRejectsTamperingAndWrongKey(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, testKey(1), 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Save(0, sampleProfile()); err != nil {
		t.Fatal(err)
	}

	other, err := NewFileStore(dir, testKey(2), 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Load(0); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() with wrong key = %v, expected %v", err, ErrCorrupt)
	}

	path := filepath.Join(dir, "profile_0.dat")
	blob, _ := os.ReadFile(path)
	blob[len(blob)-1] ^= 0xff
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Load(0); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() of tampered file = %v, expected %v", err, ErrCorrupt)
	}

	if err := os.WriteFile(path, []byte{2, 0, 0}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Load(0); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() of short file = %v, expected %v", err, ErrCorrupt)
	}
}

func TestFileStoreSlots(t *testing.T) {
	fs := newTestFileStore(t)

	if _, err := fs.Load(2); !errors.Is(err, ErrNoProfile) {
		t.Errorf("Load() of empty slot = %v, expected %v", err, ErrNoProfile)
	}
	if err := fs.Save(3, sampleProfile()); !errors.Is(err, ErrBadSlot) {
		t.Errorf("Save(3) = %v, expected %v", err, ErrBadSlot)
	}
	if fs.Exists(-1) {
		t.Error("Exists(-1) should be false")
	}

	fs.Save(2, sampleProfile())
	list := fs.List()
	if len(list) != 3 {
		t.Fatalf("len(List()) = %d, expected 3", len(list))
	}
	for i, info := range list {
		want := i == 2
		if info.Slot != i || info.Exists != want {
			t.Errorf("List()[%d] = slot %d exists %v, expected %d %v", i, info.Slot, info.Exists, i, want)
		}
	}
	if list[2].Err != nil || list[2].Profile.PlayerName != "Ana" {
		t.Errorf("List()[2] = %+v", list[2])
	}

	if err := fs.Delete(2); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if fs.Exists(2) {
		t.Error("slot 2 should be gone")
	}
	if err := fs.Delete(2); err != nil {
		t.Errorf("Delete() of empty slot = %v, expected nil", err)
	}
}

func TestNewFileStoreKeyErrors(t *testing.T) {
	if _, err := NewFileStore(t.TempDir(), nil, 3); !errors.Is(err, ErrMissingKey) {
		t.Errorf("nil key = %v, expected %v", err, ErrMissingKey)
	}
	if _, err := NewFileStore(t.TempDir(), []byte("short"), 3); !errors.Is(err, ErrBadKey) {
		t.Errorf("short key = %v, expected %v", err, ErrBadKey)
	}
}

func TestKeyFromEnv(t *testing.T) {
	good := base64.StdEncoding.EncodeToString(testKey(9))

	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{"unset", "", ErrMissingKey},
		{"not base64", "!!!", ErrBadKey},
		{"wrong length", base64.StdEncoding.EncodeToString([]byte("sixteen bytes..!")), ErrBadKey},
		{"valid", good, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(KeyEnv, tt.value)
			key, err := KeyFromEnv(KeyEnv)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("KeyFromEnv() = %v, expected %v", err, tt.wantErr)
			}
			if err == nil && !bytes.Equal(key, testKey(9)) {
				t.Errorf("key = %x, expected %x", key, testKey(9))
			}
		})
	}
}

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := GenerateKey()
	if a == b {
		t.Error("GenerateKey() returned the same key twice")
	}
	if _, err := DecodeKey(a); err != nil {
		t.Errorf("DecodeKey(GenerateKey()) = %v", err)
	}
}
