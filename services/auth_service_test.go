package services

import (
	"context"
	"testing"

	"DocRegistry/config"
	"DocRegistry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginReturnsStoredRole(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "Ana", "ana@example.com", "secret", models.RoleAdmin)
	seedUser(t, db, "Luis", "luis@example.com", "hunter2", models.RoleUser)

	svc := NewAuthService(db, NewPasswordPolicy(config.PasswordSchemePlain))

	who, err := svc.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, who.UserID)
	assert.Equal(t, "Ana", who.Name)
	assert.Equal(t, models.RoleAdmin, who.Role)
	assert.True(t, who.IsAdmin())

	who, err = svc.Login(context.Background(), "luis@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, who.Role)
	assert.False(t, who.IsAdmin())
}

func TestLoginMatchesEmailCaseInsensitively(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "Ana", "ana@example.com", "secret", models.RoleUser)

	svc := NewAuthService(db, NewPasswordPolicy(""))

	who, err := svc.Login(context.Background(), "  ANA@Example.com ", "secret")
	require.NoError(t, err)
	assert.True(t, who.LoggedIn())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "Ana", "ana@example.com", "secret", models.RoleUser)

	svc := NewAuthService(db, NewPasswordPolicy(""))
	ctx := context.Background()

	cases := []struct{ email, password string }{
		{"ana@example.com", "wrong"},
		{"ana@example.com", "Secret"},
		{"ana@example.com", ""},
		{"nobody@example.com", "secret"},
		{"", "secret"},
	}
	for _, tc := range cases {
		who, err := svc.Login(ctx, tc.email, tc.password)
		assert.ErrorIs(t, err, ErrInvalidCredentials, tc)
		assert.False(t, who.LoggedIn())
	}
}

func TestLoginAcceptsBcryptHash(t *testing.T) {
	db := setupTestDB(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	seedUser(t, db, "Ana", "ana@example.com", string(hash), models.RoleUser)

	svc := NewAuthService(db, NewPasswordPolicy(config.PasswordSchemePlain))

	_, err = svc.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ana@example.com", string(hash))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
