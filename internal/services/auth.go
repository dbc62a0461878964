package services

import (
	"context"
	"strings"

	"github.com/fsdevblog/smartlink/internal/models"
	"github.com/fsdevblog/smartlink/internal/repositories"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository интерфейс хранилища пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// UserService регистрация и проверка учетных данных. Хранит только bcrypt
// хеш, политика сложности паролей сюда не входит.
type UserService struct {
	repo   UserRepository
	logger *logrus.Entry
}

func NewUserService(repo UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger.WithField("module", "services/user"),
	}
}

// Register создает пользователя с bcrypt хешем пароля.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.Wrap(ErrUnauthorized, "email and password are required")
	}

	hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if hashErr != nil {
		return nil, ErrUnknown
	}

	user := models.User{
		UUID:         uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if createErr := s.repo.Create(ctx, &user); createErr != nil {
		if errors.Is(createErr, repositories.ErrDuplicateKey) {
			return nil, errors.Wrapf(ErrDuplicateKey, "email %s", email)
		}
		return nil, ErrUnknown
	}
	return &user, nil
}

// Login проверяет учетные данные и возвращает пользователя.
// Неверный email и неверный пароль неразличимы для вызывающего.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, getErr := s.repo.GetByEmail(ctx, email)
	if getErr != nil {
		if errors.Is(getErr, repositories.ErrNotFound) {
			return nil, errors.Wrap(ErrUnauthorized, "invalid credentials")
		}
		return nil, ErrUnknown
	}

	if compareErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); compareErr != nil {
		return nil, errors.Wrap(ErrUnauthorized, "invalid credentials")
	}
	return user, nil
}

// GetByID возвращает пользователя по идентификатору.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "user %d", id)
		}
		return nil, ErrUnknown
	}
	return user, nil
}
