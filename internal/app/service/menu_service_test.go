package service

import (
	"testing"

	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/internal/app/repository"
	"github.com/jwtpizza/pizza-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMenuServiceTest(t *testing.T) MenuService {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)
	return NewMenuService(repository.NewMenuRepository(testDB))
}

func TestMenuService_Add(t *testing.T) {
	menuService := setupMenuServiceTest(t)

	menu, err := menuService.Add(&model.MenuItem{
		Title:       "Veggie",
		Description: "A garden of delight",
		Image:       "pizza1.png",
		Price:       0.0038,
	})
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "Veggie", menu[0].Title)

	// Adding returns the full updated catalog
	menu, err = menuService.Add(&model.MenuItem{Title: "Pepperoni", Price: 0.0042})
	require.NoError(t, err)
	assert.Len(t, menu, 2)
}

func TestMenuService_Add_Invalid(t *testing.T) {
	menuService := setupMenuServiceTest(t)

	tests := []struct {
		name string
		item *model.MenuItem
	}{
		{name: "Empty title", item: &model.MenuItem{Price: 0.0038}},
		{name: "Zero price", item: &model.MenuItem{Title: "Veggie"}},
		{name: "Negative price", item: &model.MenuItem{Title: "Veggie", Price: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu, err := menuService.Add(tt.item)
			assert.ErrorIs(t, err, ErrInvalidMenuItem)
			assert.Nil(t, menu)
		})
	}
}

func TestMenuService_List_Empty(t *testing.T) {
	menuService := setupMenuServiceTest(t)

	menu, err := menuService.List()
	require.NoError(t, err)
	assert.Empty(t, menu)
}
