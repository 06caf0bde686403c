package auth

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"appdeck/internal/models"
	"appdeck/internal/storage"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	return db
}

func TestCredentialStore_CreateAndVerify(t *testing.T) {
	creds := NewCredentialStore(testDB(t))

	user, err := creds.Create("alice", "pw1", "a@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID == 0 {
		t.Error("Created user should have an ID")
	}
	if user.PasswordHash == "pw1" {
		t.Error("Password must not be stored in plaintext")
	}

	got, err := creds.Verify("alice", "pw1")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Verify returned user %d, want %d", got.ID, user.ID)
	}
}

func TestCredentialStore_VerifyFailures(t *testing.T) {
	creds := NewCredentialStore(testDB(t))
	if _, err := creds.Create("alice", "pw1", ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Wrong password and unknown username fail identically.
	if _, err := creds.Verify("alice", "wrong"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Verify(wrong password) error = %v, want ErrUserNotFound", err)
	}
	if _, err := creds.Verify("nobody", "pw1"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Verify(unknown user) error = %v, want ErrUserNotFound", err)
	}
}

func TestCredentialStore_DuplicateUsername(t *testing.T) {
	creds := NewCredentialStore(testDB(t))
	if _, err := creds.Create("alice", "pw1", ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := creds.Create("alice", "pw2", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Create(duplicate) error = %v, want ErrUsernameTaken", err)
	}
}

func TestCredentialStore_SetPassword(t *testing.T) {
	creds := NewCredentialStore(testDB(t))
	user, err := creds.Create("alice", "old", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := creds.SetPassword(user, "new"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}

	if _, err := creds.Verify("alice", "old"); !errors.Is(err, ErrUserNotFound) {
		t.Error("Old password should no longer verify")
	}
	if _, err := creds.Verify("alice", "new"); err != nil {
		t.Errorf("New password should verify, got %v", err)
	}
}

func TestTokenStore_IssueAndResolve(t *testing.T) {
	db := testDB(t)
	creds := NewCredentialStore(db)
	tokens := NewTokenStore(db)

	user, err := creds.Create("alice", "pw1", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	got, err := tokens.Resolve(token.Key)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Resolve returned user %d, want %d", got.ID, user.ID)
	}
}

func TestTokenStore_Resolve_Invalid(t *testing.T) {
	tokens := NewTokenStore(testDB(t))
	if _, err := tokens.Resolve("not-a-real-key"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Resolve(bogus) error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenStore_IssueOrReuse(t *testing.T) {
	db := testDB(t)
	creds := NewCredentialStore(db)
	tokens := NewTokenStore(db)

	user, err := creds.Create("alice", "pw1", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first, err := tokens.IssueOrReuse(user)
	if err != nil {
		t.Fatalf("IssueOrReuse() error = %v", err)
	}
	second, err := tokens.IssueOrReuse(user)
	if err != nil {
		t.Fatalf("IssueOrReuse() error = %v", err)
	}
	if first.Key != second.Key {
		t.Error("Repeated IssueOrReuse should return the same key")
	}

	var count int64
	db.Model(&models.Token{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("Token count = %d, want 1", count)
	}
}

func TestTokenStore_RevokeAll(t *testing.T) {
	db := testDB(t)
	creds := NewCredentialStore(db)
	tokens := NewTokenStore(db)

	user, err := creds.Create("alice", "pw1", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if err := tokens.RevokeAll(user); err != nil {
		t.Fatalf("RevokeAll() error = %v", err)
	}

	if _, err := tokens.Resolve(token.Key); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Resolve after revoke error = %v, want ErrInvalidToken", err)
	}
}
