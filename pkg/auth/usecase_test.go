package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryUserRepo struct {
	byEmail map[string]User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: make(map[string]User)}
}

func (m *memoryUserRepo) Create(_ context.Context, user User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return ErrUserAlreadyExists
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

type staticTokens struct{}

func (staticTokens) Generate(_ context.Context, _ User) (string, error) {
	return "token", nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newMemoryUserRepo(), staticTokens{})

	res, err := svc.Register(context.Background(), "Jane@Example.com", "secret", RoleSeeker)
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", res.User.Email)
	require.Equal(t, RoleSeeker, res.User.Role)
	require.Equal(t, "token", res.Token)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("secret")))

	logged, err := svc.Login(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, res.User.ID, logged.User.ID)
}

func TestRegisterDefaultsToSeeker(t *testing.T) {
	svc := NewAuthService(newMemoryUserRepo(), staticTokens{})

	res, err := svc.Register(context.Background(), "a@b.c", "pw", "")
	require.NoError(t, err)
	require.Equal(t, RoleSeeker, res.User.Role)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newMemoryUserRepo(), staticTokens{})

	_, err := svc.Register(context.Background(), "a@b.c", "pw", "admin")
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := NewAuthService(newMemoryUserRepo(), staticTokens{})

	_, err := svc.Register(context.Background(), "a@b.c", "pw", RoleRecruiter)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@b.c", "pw", RoleRecruiter)
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newMemoryUserRepo(), staticTokens{})

	_, err := svc.Register(context.Background(), "a@b.c", "pw", RoleSeeker)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "a@b.c", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "missing@b.c", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
