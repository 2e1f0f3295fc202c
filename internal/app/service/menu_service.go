package service

import (
	"errors"

	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/internal/app/repository"
	"github.com/jwtpizza/pizza-backend/pkg/logger"
)

var ErrInvalidMenuItem = errors.New("invalid menu item")

type MenuService interface {
	List() ([]model.MenuItem, error)
	Add(item *model.MenuItem) ([]model.MenuItem, error)
}

type menuService struct {
	menuRepo repository.MenuRepository
}

func NewMenuService(menuRepo repository.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) List() ([]model.MenuItem, error) {
	return s.menuRepo.List()
}

// Add appends an item to the global catalog and returns the full updated
// menu. The catalog is append-only.
func (s *menuService) Add(item *model.MenuItem) ([]model.MenuItem, error) {
	if item.Title == "" || item.Price <= 0 {
		return nil, ErrInvalidMenuItem
	}

	if err := s.menuRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Menu item added", map[string]interface{}{
		"menu_id": item.ID,
		"title":   item.Title,
		"price":   item.Price,
	})
	return s.menuRepo.List()
}
