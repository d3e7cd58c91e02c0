package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/repository"
	pkgerrors "go-inventory-qr/pkg/errors"
	"go-inventory-qr/pkg/logger"
	"go-inventory-qr/pkg/metrics"
)

const maxCategoryNameLen = 50

type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, name string) (*model.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	materialRepo repository.MaterialRepository
	db           *gorm.DB
	events       EventPublisher
	metrics      *metrics.InventoryMetrics
	logg         *logger.Logger
}

func NewCategoryService(
	cRepo repository.CategoryRepository,
	mRepo repository.MaterialRepository,
	db *gorm.DB,
	events EventPublisher,
	m *metrics.InventoryMetrics,
	logg *logger.Logger,
) CategoryService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &categoryService{
		categoryRepo: cRepo,
		materialRepo: mRepo,
		db:           db,
		events:       publisherOrNop(events),
		metrics:      m,
		logg:         logg,
	}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list categories")
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is too long")
	}

	_, err := s.categoryRepo.FindByName(ctx, name)
	if err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
	}
	if !isNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to check category")
	}

	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, writeError(err, "category already exists")
	}
	s.metrics.IncOperation("category", "create")
	s.events.Publish(EventCategoryCreated, category)
	return category, nil
}

// Delete uncategorizes every material in the category, one update each, and
// then removes the category. Both steps share one transaction.
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "category not found")
	}

	orphaned := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		materials, err := s.materialRepo.FindByCategory(tx, id)
		if err != nil {
			return err
		}
		for _, m := range materials {
			if err := s.materialRepo.ClearCategory(tx, m.ID); err != nil {
				return err
			}
			orphaned++
		}
		return s.categoryRepo.Delete(tx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete category")
	}

	s.metrics.IncOperation("category", "delete")
	s.metrics.AddOrphaned(orphaned)
	s.logg.Info(s.logg.WithField(ctx, "orphaned", orphaned), "category deleted")
	s.events.Publish(EventCategoryDeleted, map[string]any{
		"id":       category.ID,
		"name":     category.Name,
		"orphaned": orphaned,
	})
	return nil
}
