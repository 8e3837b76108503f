package services

import (
	"context"
	"errors"
	"fmt"

	"minitwit/models"
	"minitwit/monitoring"
	"minitwit/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

// RegisterRequest is the registration form. Field order matters: the first
// failing field decides the reported error.
type RegisterRequest struct {
	Username  string `validate:"required"`
	Email     string `validate:"required,contains=@"`
	Password  string `validate:"required"`
	Password2 string `validate:"eqfield=Password"`
}

type AuthService struct {
	users  repositories.UserRepository
	hasher PasswordHasher
}

func NewAuthService(users repositories.UserRepository, hasher PasswordHasher) *AuthService {
	return &AuthService{users: users, hasher: hasher}
}

// Login checks the credentials and returns the matching user.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		monitoring.LoginFailure.WithLabelValues("invalid_username").Inc()
		return nil, ErrInvalidUsername
	}
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(user.PwHash, password); err != nil {
		monitoring.LoginFailure.WithLabelValues("invalid_password").Inc()
		return nil, ErrInvalidPassword
	}

	monitoring.LoginSuccess.Inc()
	return user, nil
}

// Register validates req and stores a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := validateRegistration(req); err != nil {
		s.registerFailed(err)
		return nil, err
	}

	taken, err := s.users.Exists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if taken {
		s.registerFailed(ErrUsernameTaken)
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{Username: req.Username, Email: req.Email, PwHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	monitoring.RegisterSuccess.Inc()
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return user, nil
}

// CurrentUser resolves the user id stored in a session. A stale id (user no
// longer present) yields nil without error.
func (s *AuthService) CurrentUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

func (s *AuthService) registerFailed(err error) {
	if e, ok := AsError(err); ok {
		monitoring.RegisterFailure.WithLabelValues(e.Code).Inc()
	}
}

func validateRegistration(req RegisterRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	first := fieldErrs[0]
	switch first.Field() {
	case "Username":
		return ErrUsernameRequired
	case "Email":
		if first.Tag() == "required" {
			return ErrEmailRequired
		}
		return ErrEmailInvalid
	case "Password":
		return ErrPasswordRequired
	case "Password2":
		return ErrPasswordMismatch
	}
	return err
}
