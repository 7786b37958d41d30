package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceWithUser(t *testing.T, email, password, role string) *Service {
	t.Helper()
	Configure("test-secret", DefaultTokenTTL)

	users := repo.NewInMemoryUserRepository()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	_, err = users.Create(context.Background(), models.User{Email: email, PasswordHash: hash, Role: role})
	require.NoError(t, err)
	return NewService(users)
}

func TestAuthenticate(t *testing.T) {
	svc := newServiceWithUser(t, "staff@example.com", "secret1", models.RoleUser)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		role     string
		wantErr  error
	}{
		{name: "valid", email: "staff@example.com", password: "secret1", role: models.RoleUser},
		{name: "email is case insensitive", email: " Staff@Example.com ", password: "secret1", role: models.RoleUser},
		{name: "wrong password", email: "staff@example.com", password: "nope", role: models.RoleUser, wantErr: ErrInvalidCredentials},
		{name: "unknown user", email: "ghost@example.com", password: "secret1", role: models.RoleUser, wantErr: ErrInvalidCredentials},
		{name: "role mismatch", email: "staff@example.com", password: "secret1", role: models.RoleAdmin, wantErr: ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, user, err := svc.Authenticate(ctx, tt.email, tt.password, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "staff@example.com", user.Email)

			claims, err := ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, "staff@example.com", claims.Email)
			assert.Equal(t, models.RoleUser, claims.Role)
		})
	}
}

func TestGenerateToken_ExpiresAfterTenHours(t *testing.T) {
	Configure("test-secret", DefaultTokenTTL)

	token, err := GenerateToken(models.User{Email: "a@b.c", Role: models.RoleAdmin})
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_RejectsForeignSecretAndExpired(t *testing.T) {
	Configure("test-secret", DefaultTokenTTL)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "a@b.c", Role: models.RoleAdmin})
	signed, err := foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = ParseToken(signed)
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:            "a@b.c",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	})
	signed, err = expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = ParseToken(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenClaims_RequiresBearerPrefix(t *testing.T) {
	_, err := TokenClaims("Token abc")
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	svc := newServiceWithUser(t, "admin@example.com", "secret1", models.RoleAdmin)
	ctx := context.Background()

	token, user, err := svc.Register(ctx, "New", "New@Example.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)

	_, _, err = svc.Register(ctx, "Again", "new@example.com", "password1")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestEnsureAdmin(t *testing.T) {
	Configure("test-secret", DefaultTokenTTL)
	users := repo.NewInMemoryUserRepository()
	svc := NewService(users)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "root@example.com", "rootpass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "root@example.com", "rootpass")
	require.NoError(t, err)
	assert.False(t, created)

	u, err := users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}
