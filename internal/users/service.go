package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/internforge/backend/internal/apperr"
	"github.com/internforge/backend/internal/database"
	"github.com/internforge/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Service encapsulates user-related business logic
type Service struct {
	repo UserRepository
	cost int
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r, cost: bcrypt.DefaultCost}
}

// Registration is the input of Register. Profile fields are optional.
type Registration struct {
	Email    string
	Password string
	Name     string
	College  string
	Course   string
	Semester string
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register stores a new local account and returns it.
func (s *Service) Register(ctx context.Context, reg Registration) (*models.User, error) {
	email := normalizeEmail(reg.Email)
	if email == "" || reg.Password == "" {
		return nil, apperr.Validation("email and password required")
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("User already exists")
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperr.Validation("password too long")
		}
		return nil, err
	}
	now := time.Now().UTC()
	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		AuthProvider: models.AuthProviderLocal,
		Name:         strings.TrimSpace(reg.Name),
		College:      strings.TrimSpace(reg.College),
		Course:       strings.TrimSpace(reg.Course),
		Semester:     strings.TrimSpace(reg.Semester),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if database.IsDuplicate(err) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, err
	}
	return u, nil
}

// Authenticate checks the credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password required")
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.Auth("Invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Auth("Invalid credentials")
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	return u, err
}

// UpdateProfile applies the allowed profile fields.
func (s *Service) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) error {
	if upd.Empty() {
		return apperr.Validation("No valid fields to update")
	}
	err := s.repo.UpdateProfile(ctx, id, upd)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("User not found")
	}
	return err
}
