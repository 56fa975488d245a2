package secrets

import (
	"testing"

	"github.com/99designs/keyring"
)

func TestPasswordStore(t *testing.T) {
	store := NewPasswordStoreWithRing(keyring.NewArrayKeyring(nil))
	cred := Credential{Driver: "postgres", Host: "localhost", Port: 5432, Database: "app", User: "me"}

	if _, err := store.Get(cred); err != ErrPasswordNotFound {
		t.Fatalf("Get() before Save error = %v, want ErrPasswordNotFound", err)
	}

	if err := store.Save(cred, "secret"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Get(cred)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "secret" {
		t.Errorf("Get() = %q, want %q", got, "secret")
	}

	other := cred
	other.User = "you"
	if _, err := store.Get(other); err != ErrPasswordNotFound {
		t.Errorf("Get() for another user error = %v, want ErrPasswordNotFound", err)
	}

	if err := store.Delete(cred); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(cred); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
	if _, err := store.Get(cred); err != ErrPasswordNotFound {
		t.Errorf("Get() after Delete error = %v, want ErrPasswordNotFound", err)
	}
}

func TestSaveSkipsEmptyPassword(t *testing.T) {
	store := NewPasswordStoreWithRing(keyring.NewArrayKeyring(nil))
	cred := Credential{Driver: "postgres", Host: "db", Database: "app", User: "me"}

	if err := store.Save(cred, ""); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := store.Get(cred); err != ErrPasswordNotFound {
		t.Errorf("Get() error = %v, want ErrPasswordNotFound", err)
	}
}

func TestValueAfter(t *testing.T) {
	out := "  | \"IOPlatformSerialNumber\" = \"X\"\n  | \"IOPlatformUUID\" = \"ABC-123\"\n"
	got, ok := valueAfter(out, "IOPlatformUUID", "=")
	if !ok || got != `"ABC-123"` {
		t.Errorf("valueAfter() = %q, %v", got, ok)
	}
}
