package service

import (
	"testing"

	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/internal/app/repository"
	"github.com/jwtpizza/pizza-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFranchiseServiceTest(t *testing.T) (FranchiseService, repository.UserRepository) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	franchiseRepo := repository.NewFranchiseRepository(testDB)
	franchiseService := NewFranchiseService(franchiseRepo, userRepo)

	return franchiseService, userRepo
}

func registerFranchiseTestUser(t *testing.T, userRepo repository.UserRepository, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$12$fakehashfortest",
		Roles:        []model.UserRole{{Role: model.RoleDiner}},
	}
	require.NoError(t, userRepo.Create(user))
	return user
}

func TestFranchiseService_Create(t *testing.T) {
	franchiseService, userRepo := setupFranchiseServiceTest(t)

	admin := registerFranchiseTestUser(t, userRepo, "admin@example.com")

	franchise, err := franchiseService.Create("PizzaCorp", []string{"admin@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, franchise.ID)
	assert.Equal(t, "PizzaCorp", franchise.Name)
	require.Len(t, franchise.Admins, 1)
	assert.Equal(t, admin.ID, franchise.Admins[0].ID)
	assert.Equal(t, "admin@example.com", franchise.Admins[0].Email)

	// The admin now holds a franchisee role scoped to the new franchise
	granted, err := userRepo.FindByID(admin.ID)
	require.NoError(t, err)
	assert.True(t, granted.IsFranchiseeOf(franchise.ID))
}

func TestFranchiseService_Create_UnknownAdminEmail(t *testing.T) {
	franchiseService, userRepo := setupFranchiseServiceTest(t)

	registerFranchiseTestUser(t, userRepo, "known@example.com")

	franchise, err := franchiseService.Create("PizzaCorp", []string{"known@example.com", "ghost@example.com"})
	assert.ErrorIs(t, err, ErrUnknownUser)
	assert.Contains(t, err.Error(), "ghost@example.com")
	assert.Nil(t, franchise)

	// Nothing was created
	franchises, _, listErr := franchiseService.List(0, 10, "*")
	require.NoError(t, listErr)
	assert.Empty(t, franchises)
}

func TestFranchiseService_ListForUser(t *testing.T) {
	franchiseService, userRepo := setupFranchiseServiceTest(t)

	admin := registerFranchiseTestUser(t, userRepo, "admin@example.com")
	outsider := registerFranchiseTestUser(t, userRepo, "outsider@example.com")

	franchise, err := franchiseService.Create("PizzaCorp", []string{"admin@example.com"})
	require.NoError(t, err)

	franchises, err := franchiseService.ListForUser(admin.ID)
	require.NoError(t, err)
	require.Len(t, franchises, 1)
	assert.Equal(t, franchise.ID, franchises[0].ID)
	require.Len(t, franchises[0].Admins, 1)
	assert.Equal(t, "admin@example.com", franchises[0].Admins[0].Email)

	franchises, err = franchiseService.ListForUser(outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, franchises)
}

func TestFranchiseService_Delete(t *testing.T) {
	franchiseService, userRepo := setupFranchiseServiceTest(t)

	admin := registerFranchiseTestUser(t, userRepo, "admin@example.com")

	franchise, err := franchiseService.Create("PizzaCorp", []string{"admin@example.com"})
	require.NoError(t, err)

	require.NoError(t, franchiseService.Delete(franchise.ID))

	_, err = franchiseService.GetByID(franchise.ID)
	assert.ErrorIs(t, err, ErrFranchiseNotFound)

	// The deleted franchise no longer shows in the admin's listing
	franchises, err := franchiseService.ListForUser(admin.ID)
	require.NoError(t, err)
	assert.Empty(t, franchises)

	// Deleting twice reports not found
	assert.ErrorIs(t, franchiseService.Delete(franchise.ID), ErrFranchiseNotFound)
}

func TestFranchiseService_Stores(t *testing.T) {
	franchiseService, userRepo := setupFranchiseServiceTest(t)

	registerFranchiseTestUser(t, userRepo, "admin@example.com")
	franchise, err := franchiseService.Create("PizzaCorp", []string{"admin@example.com"})
	require.NoError(t, err)

	store, err := franchiseService.CreateStore(franchise.ID, "Downtown")
	require.NoError(t, err)
	assert.NotZero(t, store.ID)
	assert.Equal(t, franchise.ID, store.FranchiseID)

	// Stores nest under the franchise
	found, err := franchiseService.GetByID(franchise.ID)
	require.NoError(t, err)
	require.Len(t, found.Stores, 1)
	assert.Equal(t, "Downtown", found.Stores[0].Name)

	require.NoError(t, franchiseService.DeleteStore(franchise.ID, store.ID))
	assert.ErrorIs(t, franchiseService.DeleteStore(franchise.ID, store.ID), ErrStoreNotFound)
}

func TestFranchiseService_CreateStore_UnknownFranchise(t *testing.T) {
	franchiseService, _ := setupFranchiseServiceTest(t)

	store, err := franchiseService.CreateStore(9999, "Downtown")
	assert.ErrorIs(t, err, ErrFranchiseNotFound)
	assert.Nil(t, store)
}
