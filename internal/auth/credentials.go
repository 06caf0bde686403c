package auth

import (
	"errors"

	"gorm.io/gorm"

	"appdeck/internal/models"
)

var (
	// ErrUsernameTaken is returned by Create when the username already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound covers both an unknown username and a wrong password.
	// The two cases are deliberately conflated so responses cannot be used
	// to enumerate accounts.
	ErrUserNotFound = errors.New("user not found")
)

// CredentialStore persists user identities and their password hashes.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Create registers a new user with a hashed password.
func (s *CredentialStore) Create(username, password, email string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, PasswordHash: hash, Email: email}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("username = ?", username).First(&existing).Error; err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Verify checks a username/password pair and returns the matching user.
func (s *CredentialStore) Verify(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// SetPassword replaces the stored hash for user.
func (s *CredentialStore) SetPassword(user *models.User, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.db.Model(user).Update("password_hash", hash).Error; err != nil {
		return err
	}
	user.PasswordHash = hash
	return nil
}
