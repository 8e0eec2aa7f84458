// FILE: internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"

	"huntstay-be/internal/dto"
	"huntstay-be/internal/entity"
	"huntstay-be/internal/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceForTest(f *fixture) IAuthService {
	return NewAuthService(newMemUowFactory(f.store), nopLogger{})
}

func TestAuthRegister(t *testing.T) {
	f := newFixture()
	svc := newAuthServiceForTest(f)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "New Hunter",
		Email:    "  New.Hunter@Example.COM ",
		Password: "hunter2hunter2",
		Phone:    "+1-555-0199",
		Role:     "user",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.hunter@example.com", resp.Email, "email is normalized")

	stored := f.store.users[resp.Id]
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleUser, stored.Role)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2hunter2")))
}

func TestAuthRegisterProviderRole(t *testing.T) {
	f := newFixture()
	svc := newAuthServiceForTest(f)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "New Outfitter",
		Email:    "new.outfitter@example.com",
		Password: "secret-pass",
		Role:     "provider",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleProvider, f.store.users[resp.Id].Role)

	// Anything else collapses to the plain user role; admin accounts are
	// never self-registered.
	resp, err = svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Sneaky",
		Email:    "sneaky@example.com",
		Password: "secret-pass",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, f.store.users[resp.Id].Role)
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	svc := newAuthServiceForTest(f)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Impostor",
		Email:    "Hunter@Example.com",
		Password: "whatever-pass",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, "EMAIL_TAKEN"))
}

func TestAuthLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	f := newFixture()
	svc := newAuthServiceForTest(f)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Login Tester",
		Email:    "login@example.com",
		Password: "correct-horse",
		Role:     "provider",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "LOGIN@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", resp.User.Email)
	assert.Equal(t, "provider", resp.User.Role)

	token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.Id.String(), claims["user_id"])
	assert.Equal(t, "provider", claims["role"])
	assert.NotNil(t, claims["exp"])
}

func TestAuthLoginRejections(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	f := newFixture()
	svc := newAuthServiceForTest(f)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Login Tester",
		Email:    "login@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "login@example.com", Password: "wrong"})
		assert.True(t, apperror.Is(err, "INVALID_CREDENTIALS"))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
		assert.True(t, apperror.Is(err, "INVALID_CREDENTIALS"))
	})

	t.Run("deactivated account", func(t *testing.T) {
		for _, u := range f.store.users {
			if u.Email == "login@example.com" {
				u.IsActive = false
			}
		}
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "login@example.com", Password: "correct-horse"})
		assert.True(t, apperror.Is(err, "INVALID_CREDENTIALS"))
	})
}

func TestAuthMe(t *testing.T) {
	f := newFixture()
	svc := newAuthServiceForTest(f)

	me, err := svc.Me(context.Background(), f.guest.Id)
	require.NoError(t, err)
	assert.Equal(t, f.guest.Email, me.Email)
	assert.Equal(t, string(entity.RoleUser), me.Role)

	_, err = svc.Me(context.Background(), uuid.New())
	assert.True(t, apperror.Is(err, "USER_NOT_FOUND"))
}
