package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/db/models"
)

const whereUsername = "username = ?"

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate checks the password and, when the account has one, the TOTP code.
func (p *LocalProvider) Authenticate(username, password, code string) (*models.User, error) {
	user, err := p.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	if user.TOTPSecret == "" {
		return user, nil
	}

	if code == "" {
		return nil, ErrOTPRequired
	}

	if !totp.Validate(strings.TrimSpace(code), user.TOTPSecret) {
		return nil, ErrInvalidOTP
	}

	return user, nil
}

// CreateUser creates a new local user.
func (p *LocalProvider) CreateUser(username, password string, role models.Role) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	var count int64
	if err := p.db.Model(&models.User{}).Where(whereUsername, username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if count > 0 {
		return nil, ErrUserNameExists
	}

	user := models.User{
		Username: username,
		Password: models.HashPassword(password),
		Role:     role,
	}

	if err := p.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// ResetPassword replaces a user's password.
func (p *LocalProvider) ResetPassword(userID uint64, newPassword string) error {
	return p.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password", models.HashPassword(newPassword)).Error
}

// EnableTOTP generates and stores a new TOTP secret for the user.
// The returned key carries the provisioning URL for authenticator apps.
func (p *LocalProvider) EnableTOTP(userID uint64, issuer string) (*otp.Key, error) {
	user, err := p.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: user.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate totp secret: %w", err)
	}

	if err = p.db.Model(user).Update("totp_secret", key.Secret()).Error; err != nil {
		return nil, fmt.Errorf("failed to store totp secret: %w", err)
	}

	return key, nil
}

// GetUserByID retrieves a user by ID.
func (p *LocalProvider) GetUserByID(userID uint64) (*models.User, error) {
	var user models.User

	err := p.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (p *LocalProvider) GetUserByUsername(username string) (*models.User, error) {
	var user models.User

	err := p.db.Where(whereUsername, username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}
