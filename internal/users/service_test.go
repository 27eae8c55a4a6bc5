package users

import (
	"context"
	"testing"

	"github.com/internforge/backend/internal/apperr"
	"github.com/internforge/backend/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() *Service {
	svc := NewService(NewMemoryUserRepository())
	svc.cost = bcrypt.MinCost
	return svc
}

func TestRegister_StoresHashAndDefaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, Registration{Email: " Ada@Example.com ", Password: "s3cret", Name: "Ada"})
	require.NoError(t, err)
	require.False(t, u.ID.IsZero())
	require.Equal(t, "ada@example.com", u.Email)
	require.Equal(t, models.AuthProviderLocal, u.AuthProvider)
	require.False(t, u.EmailVerified)
	require.False(t, u.OnboardingCompleted)
	require.NotEqual(t, "s3cret", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
	require.False(t, u.CreatedAt.IsZero())
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, Registration{Email: "a@x.io", Password: "p"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, Registration{Email: "A@x.io", Password: "q"})
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegister_RequiresEmailAndPassword(t *testing.T) {
	svc := newTestService()
	_, err := svc.Register(context.Background(), Registration{Email: "a@x.io"})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	reg, err := svc.Register(ctx, Registration{Email: "a@x.io", Password: "right"})
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "a@x.io", "right")
	require.NoError(t, err)
	require.Equal(t, reg.ID, u.ID)

	_, err = svc.Authenticate(ctx, "a@x.io", "wrong")
	require.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	require.Equal(t, "Invalid credentials", apperr.Message(err, ""))

	_, err = svc.Authenticate(ctx, "nobody@x.io", "right")
	require.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	require.Equal(t, "Invalid credentials", apperr.Message(err, ""))
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	u, err := svc.Register(ctx, Registration{Email: "a@x.io", Password: "p"})
	require.NoError(t, err)

	err = svc.UpdateProfile(ctx, u.ID, models.ProfileUpdate{})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	college, done := "MIT", true
	require.NoError(t, svc.UpdateProfile(ctx, u.ID, models.ProfileUpdate{College: &college, OnboardingCompleted: &done}))

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "MIT", got.College)
	require.True(t, got.OnboardingCompleted)

	err = svc.UpdateProfile(ctx, primitive.NewObjectID(), models.ProfileUpdate{College: &college})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSkills(t *testing.T) {
	svc := NewSkillService(NewMemorySkillRepository())
	ctx := context.Background()
	owner, other := primitive.NewObjectID(), primitive.NewObjectID()

	_, err := svc.Add(ctx, owner, "go", "")
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	sk, err := svc.Add(ctx, owner, "go", "intermediate")
	require.NoError(t, err)
	require.False(t, sk.Verified)
	_, err = svc.Add(ctx, other, "python", "beginner")
	require.NoError(t, err)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "go", list[0].Skill)

	// another user cannot delete it
	err = svc.Remove(ctx, other, sk.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	require.NoError(t, svc.Remove(ctx, owner, sk.ID))
	list, err = svc.List(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, list)
}
