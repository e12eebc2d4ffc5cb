package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hugh/taskhive/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	// ErrInvalidCredentials covers unknown email, wrong password, and
	// inactive account alike so a caller cannot tell which one occurred.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	db       *gorm.DB
	sessions *SessionManager
	logger   *slog.Logger
}

func NewService(db *gorm.DB, sessions *SessionManager, logger *slog.Logger) *Service {
	return &Service{db: db, sessions: sessions, logger: logger}
}

type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

type LoginResult struct {
	User     *models.User
	RawToken string
	Envelope string
}

// Register creates the user, an empty settings row, and the user's default
// project in one transaction. A partial failure rolls everything back.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Email:        input.Email,
			PasswordHash: hash,
			FullName:     input.FullName,
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		setting := models.UserSetting{UserID: user.ID}
		if err := tx.Create(&setting).Error; err != nil {
			return err
		}

		project := models.Project{
			Name:      "Default",
			IsActive:  true,
			IsDefault: true,
			UserID:    user.ID,
		}
		return tx.Create(&project).Error
	})

	if err != nil {
		s.logger.Error("registration failed", "email", input.Email, "error", err)
		return nil, err
	}

	return &user, nil
}

// Login verifies credentials and issues a session. All failure modes map to
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	raw, envelope, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		s.logger.Error("issuing session failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	return &LoginResult{User: &user, RawToken: raw, Envelope: envelope}, nil
}

// Logout revokes the session backing the given opaque token.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	return s.sessions.Revoke(ctx, rawToken)
}

// GetUserByID loads a user with settings and subscription attached.
func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Setting").
		Preload("Subscription").
		First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
