package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetArchive(t *testing.T) {
	gokeyring.MockInit()

	payload := `{"2024-01-01":[{"time":"08:00","amount":300}]}`

	if err := SetArchive(payload); err != nil {
		t.Fatalf("SetArchive() failed: %v", err)
	}

	retrieved, err := GetArchive()
	if err != nil {
		t.Fatalf("GetArchive() failed: %v", err)
	}

	if retrieved != payload {
		t.Errorf("GetArchive() = %q, want %q", retrieved, payload)
	}
}

func TestSetArchiveEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetArchive(""); err == nil {
		t.Error("SetArchive(\"\") should return an error")
	}
}

func TestGetArchiveNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteArchive()

	_, err := GetArchive()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetArchive() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteArchive(t *testing.T) {
	gokeyring.MockInit()

	if err := SetArchive(`{}`); err != nil {
		t.Fatalf("SetArchive() failed: %v", err)
	}

	if err := DeleteArchive(); err != nil {
		t.Fatalf("DeleteArchive() failed: %v", err)
	}

	_, err := GetArchive()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("After DeleteArchive(), GetArchive() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteArchiveNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteArchive()

	if err := DeleteArchive(); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteArchive() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}

func TestUnavailableKeyring(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no dbus session"))
	defer gokeyring.MockInit()

	if IsAvailable() {
		t.Error("IsAvailable() = true, want false when the keyring errors")
	}

	_, err := GetArchive()
	if !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("GetArchive() error = %v, want %v", err, ErrKeyringUnavailable)
	}
}
