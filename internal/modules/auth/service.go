package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyolog/core/internal/config"
	"github.com/hyolog/core/internal/middleware"
	"github.com/hyolog/core/internal/models"
	"github.com/hyolog/core/internal/pkg/apperr"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrBadCredentials is returned for an unknown email or a wrong password.
// The two cases are deliberately indistinguishable.
var ErrBadCredentials = errors.New("invalid email or password")

type Service struct {
	db     *gorm.DB
	secret string
	logger *zap.Logger
}

func NewService(db *gorm.DB, secret string, logger *zap.Logger) *Service {
	return &Service{db: db, secret: secret, logger: logger}
}

// Login verifies credentials and issues a bearer token.
func (s *Service) Login(email, password string) (string, *models.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrBadCredentials
	}

	var user models.UserModel
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrBadCredentials
	}

	token, err := middleware.IssueToken(s.secret, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// SeedAdmin creates the configured author account when the users table is
// empty. Subsequent boots are no-ops.
func (s *Service) SeedAdmin(seed config.AdminSeedConfig) error {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(seed.Email))
	if email == "" || seed.Password == "" {
		s.logger.Warn("no users exist and no admin seed configured; authenticated routes are unreachable")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	displayName := strings.TrimSpace(seed.DisplayName)
	if displayName == "" {
		displayName = "Admin"
	}

	user := models.UserModel{
		Email:       email,
		Password:    string(hash),
		DisplayName: displayName,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	s.logger.Info("seeded admin user", zap.String("email", email))
	return nil
}

// GetByID loads a user by id.
func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
