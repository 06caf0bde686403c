package auth

import (
	"errors"

	"gorm.io/gorm"

	"appdeck/internal/models"
)

// ErrInvalidToken is returned by Resolve for unknown or revoked keys.
var ErrInvalidToken = errors.New("invalid token")

// TokenStore issues, resolves and revokes bearer tokens. Each token belongs
// to exactly one user.
type TokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Issue creates a fresh token for user.
func (s *TokenStore) Issue(user *models.User) (*models.Token, error) {
	key, err := GenerateTokenKey()
	if err != nil {
		return nil, err
	}
	token := models.Token{Key: key, UserID: user.ID}
	if err := s.db.Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// IssueOrReuse returns the user's existing token if one is active, issuing a
// new one otherwise. Login goes through here so repeated logins do not
// accumulate tokens.
func (s *TokenStore) IssueOrReuse(user *models.User) (*models.Token, error) {
	var token models.Token
	err := s.db.Where("user_id = ?", user.ID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.Issue(user)
}

// Resolve looks up the user owning the presented key.
func (s *TokenStore) Resolve(key string) (*models.User, error) {
	var token models.Token
	if err := s.db.Where("key = ?", key).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	var user models.User
	if err := s.db.First(&user, token.UserID).Error; err != nil {
		return nil, ErrInvalidToken
	}
	return &user, nil
}

// RevokeAll deletes every token owned by user.
func (s *TokenStore) RevokeAll(user *models.User) error {
	return s.db.Where("user_id = ?", user.ID).Delete(&models.Token{}).Error
}
