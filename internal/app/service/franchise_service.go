package service

import (
	"errors"
	"fmt"

	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/internal/app/repository"
	"github.com/jwtpizza/pizza-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrFranchiseNotFound = errors.New("franchise not found")
	ErrStoreNotFound     = errors.New("store not found")
)

type FranchiseService interface {
	Create(name string, adminEmails []string) (*model.Franchise, error)
	GetByID(id uint) (*model.Franchise, error)
	List(page, limit int, namePattern string) ([]model.Franchise, bool, error)
	ListForUser(userID uint) ([]model.Franchise, error)
	Delete(id uint) error
	CreateStore(franchiseID uint, name string) (*model.Store, error)
	DeleteStore(franchiseID, storeID uint) error
}

type franchiseService struct {
	franchiseRepo repository.FranchiseRepository
	userRepo      repository.UserRepository
}

func NewFranchiseService(franchiseRepo repository.FranchiseRepository, userRepo repository.UserRepository) FranchiseService {
	return &franchiseService{
		franchiseRepo: franchiseRepo,
		userRepo:      userRepo,
	}
}

// Create makes a franchise and grants each named admin a franchisee role
// scoped to it. Every admin email must resolve to an existing user.
func (s *franchiseService) Create(name string, adminEmails []string) (*model.Franchise, error) {
	logger.Info("Creating franchise", map[string]interface{}{
		"name":   name,
		"admins": len(adminEmails),
	})

	admins := make([]*model.User, 0, len(adminEmails))
	for _, email := range adminEmails {
		user, err := s.userRepo.FindByEmail(email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Franchise creation failed: admin email does not resolve", map[string]interface{}{
					"email": email,
				})
				return nil, fmt.Errorf("%w: %s", ErrUnknownUser, email)
			}
			return nil, err
		}
		admins = append(admins, user)
	}

	franchise := &model.Franchise{Name: name}
	if err := s.franchiseRepo.Create(franchise); err != nil {
		return nil, err
	}

	for _, admin := range admins {
		if err := s.userRepo.GrantRole(admin.ID, model.RoleFranchisee, &franchise.ID); err != nil {
			return nil, err
		}
		franchise.Admins = append(franchise.Admins, model.FranchiseAdmin{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
		})
	}

	logger.Info("Franchise created", map[string]interface{}{
		"franchise_id": franchise.ID,
		"name":         franchise.Name,
	})
	return franchise, nil
}

func (s *franchiseService) GetByID(id uint) (*model.Franchise, error) {
	franchise, err := s.franchiseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFranchiseNotFound
		}
		return nil, err
	}
	return franchise, nil
}

func (s *franchiseService) List(page, limit int, namePattern string) ([]model.Franchise, bool, error) {
	return s.franchiseRepo.List(page, limit, namePattern)
}

func (s *franchiseService) ListForUser(userID uint) ([]model.Franchise, error) {
	franchises, err := s.franchiseRepo.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	for i := range franchises {
		admins, err := s.userRepo.FindFranchiseAdmins(franchises[i].ID)
		if err != nil {
			return nil, err
		}
		for _, admin := range admins {
			franchises[i].Admins = append(franchises[i].Admins, model.FranchiseAdmin{
				ID:    admin.ID,
				Name:  admin.Name,
				Email: admin.Email,
			})
		}
	}
	return franchises, nil
}

// Delete removes a franchise and cascades to its stores. Franchisee role
// grants are not revoked; the resource disappears but the grant stays.
func (s *franchiseService) Delete(id uint) error {
	if _, err := s.franchiseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFranchiseNotFound
		}
		return err
	}

	if err := s.franchiseRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Franchise deleted", map[string]interface{}{
		"franchise_id": id,
	})
	return nil
}

func (s *franchiseService) CreateStore(franchiseID uint, name string) (*model.Store, error) {
	if _, err := s.franchiseRepo.FindByID(franchiseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFranchiseNotFound
		}
		return nil, err
	}

	store := &model.Store{
		FranchiseID: franchiseID,
		Name:        name,
	}
	if err := s.franchiseRepo.CreateStore(store); err != nil {
		return nil, err
	}

	logger.Info("Store created", map[string]interface{}{
		"franchise_id": franchiseID,
		"store_id":     store.ID,
		"name":         name,
	})
	return store, nil
}

func (s *franchiseService) DeleteStore(franchiseID, storeID uint) error {
	err := s.franchiseRepo.DeleteStore(franchiseID, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoreNotFound
		}
		return err
	}

	logger.Info("Store deleted", map[string]interface{}{
		"franchise_id": franchiseID,
		"store_id":     storeID,
	})
	return nil
}
