package service

import (
	"context"
	"errors"
	"log"

	"github.com/secondchance/secondchance-backend/internal/model"
	"github.com/secondchance/secondchance-backend/internal/repository"
	"github.com/secondchance/secondchance-backend/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrWrongPassword = errors.New("wrong password")
)

// ProfileUpdate is a partial profile mutation; nil fields are untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Password  *string
}

type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (string, error)
	UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (string, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
}

type authService struct {
	users  repository.UserRepository
	issuer *token.Issuer
	cost   int
}

func NewAuthService(users repository.UserRepository, issuer *token.Issuer, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{users: users, issuer: issuer, cost: bcryptCost}
}

func (s *authService) Register(ctx context.Context, email, password, firstName, lastName string) (string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}

	user := &model.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index on email catches registrations that raced past
		// the lookup above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	tok, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", err
	}

	log.Printf("user successfully registered: id=%d", user.ID)
	return tok, nil
}

func (s *authService) UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrNotFound
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.cost)
		if err != nil {
			return "", err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return s.issuer.Issue(user.ID)
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrWrongPassword
	}

	tok, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	return tok, user, nil
}
