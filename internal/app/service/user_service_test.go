package service

import (
	"context"
	"testing"

	"github.com/jwtpizza/pizza-backend/internal/app/repository"
	"github.com/jwtpizza/pizza-backend/internal/db"
	pkgredis "github.com/jwtpizza/pizza-backend/pkg/redis"
	"github.com/jwtpizza/pizza-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserServiceTest(t *testing.T) (UserService, AuthService, *pkgredis.RevocationStore) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	revocations := setupRevocationStore(t)
	authService := NewAuthService(userRepo, revocations, testJWTSecret)
	userService := NewUserService(userRepo, revocations)

	return userService, authService, revocations
}

func TestUserService_GetByID(t *testing.T) {
	userService, authService, _ := setupUserServiceTest(t)

	user, _, err := authService.Register("Test User", "test@example.com", "password123")
	require.NoError(t, err)

	found, err := userService.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = userService.GetByID(9999)
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestUserService_UpdateProfile(t *testing.T) {
	userService, authService, _ := setupUserServiceTest(t)

	user, _, err := authService.Register("Test User", "test@example.com", "password123")
	require.NoError(t, err)

	tests := []struct {
		name      string
		newName   string
		newEmail  string
		password  string
		wantName  string
		wantEmail string
	}{
		{
			name:      "Change name only",
			newName:   "Renamed User",
			wantName:  "Renamed User",
			wantEmail: "test@example.com",
		},
		{
			name:      "Change email only",
			newEmail:  "renamed@example.com",
			wantName:  "Renamed User",
			wantEmail: "renamed@example.com",
		},
		{
			name:      "Empty fields leave everything untouched",
			wantName:  "Renamed User",
			wantEmail: "renamed@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := userService.UpdateProfile(user.ID, tt.newName, tt.newEmail, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, updated.Name)
			assert.Equal(t, tt.wantEmail, updated.Email)
		})
	}
}

func TestUserService_UpdateProfile_Password(t *testing.T) {
	userService, authService, _ := setupUserServiceTest(t)

	user, _, err := authService.Register("Test User", "test@example.com", "password123")
	require.NoError(t, err)

	updated, err := userService.UpdateProfile(user.ID, "", "", "newpassword456")
	require.NoError(t, err)
	assert.True(t, util.VerifyPassword(updated.PasswordHash, "newpassword456"))

	// The new password works for login, the old one does not
	_, _, err = authService.Login("test@example.com", "newpassword456")
	require.NoError(t, err)

	_, _, err = authService.Login("test@example.com", "password123")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestUserService_UpdateProfile_UnknownUser(t *testing.T) {
	userService, _, _ := setupUserServiceTest(t)

	_, err := userService.UpdateProfile(9999, "Name", "", "")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestUserService_Delete(t *testing.T) {
	userService, authService, revocations := setupUserServiceTest(t)
	ctx := context.Background()

	user, _, err := authService.Register("Test User", "test@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, userService.Delete(ctx, user.ID))

	// The user record is gone
	_, err = userService.GetByID(user.ID)
	assert.ErrorIs(t, err, ErrUnknownUser)

	// Every session issued to the user is invalidated
	revoked, err := revocations.IsUserRevoked(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	// A later login with the deleted credentials fails as unknown user
	_, _, err = authService.Login("test@example.com", "password123")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestUserService_Delete_UnknownUser(t *testing.T) {
	userService, _, _ := setupUserServiceTest(t)

	err := userService.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrUnknownUser)
}
