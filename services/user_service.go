package services

import (
	"context"
	"strings"
	"time"

	"github.com/p-miano/portfolio-api/auth"
	"github.com/p-miano/portfolio-api/database"
	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/models"
)

type RegisterInput struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100,cleantext"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72,password"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is an issued bearer token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type UserService struct {
	db     database.Database
	tokens *auth.Tokens
}

func NewUserService(db database.Database, tokens *auth.Tokens) UserService {
	return UserService{db: db, tokens: tokens}
}

// Register creates an account with the default role. A taken email is
// reported as a validation error on the email field.
func (s UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.FullName = strings.Join(strings.Fields(in.FullName), " ")
	in.Email = NormalizeEmail(in.Email)
	if err := validationError(fieldErrors(in), nil); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to hash password", err)
	}

	user := &models.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        []string{models.RoleUser},
	}

	err = s.db.Transaction(ctx, func(uow database.Database) error {
		existing, err := uow.UserRepo().FindByEmail(ctx, in.Email)
		if err != nil {
			return errs.NewDatabaseError("find", "user", err)
		}
		if existing != nil {
			return errs.NewFieldError("email", "email is already registered")
		}
		if err := uow.UserRepo().Add(ctx, user); err != nil {
			if errs.IsUniqueViolation(err) {
				return errs.NewFieldError("email", "email is already registered")
			}
			return errs.NewDatabaseError("create", "user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords produce the same 401.
func (s UserService) Login(ctx context.Context, in LoginInput) (Session, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := validationError(fieldErrors(in), nil); err != nil {
		return Session{}, err
	}

	user, err := s.db.UserRepo().FindByEmail(ctx, in.Email)
	if err != nil {
		return Session{}, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, in.Password) {
		return Session{}, errs.NewInvalidCredentialsError()
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return Session{}, errs.NewInternalErrorWithCause("failed to issue token", err)
	}
	return Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Profile returns the authenticated user; a deleted account is a 401.
func (s UserService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.db.UserRepo().FindByID(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewUnauthorizedError("user no longer exists")
	}
	return user, nil
}
