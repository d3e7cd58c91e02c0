package repository

import (
	"context"

	"go-inventory-qr/internal/model"

	"gorm.io/gorm"
)

// MaterialOrder selects the listing sort.
type MaterialOrder string

const (
	OrderDefault            MaterialOrder = "default"
	OrderAlphabetical       MaterialOrder = "alphabetical"
	OrderByCategory         MaterialOrder = "by_category"
	OrderByCategoryThenName MaterialOrder = "by_category_then_name"
)

// Uncategorized rows sort last. "IS NULL" yields 0/1 on both sqlite and postgres.
var orderClauses = map[MaterialOrder][]string{
	OrderDefault:            {"materials.id ASC"},
	OrderAlphabetical:       {"materials.name ASC", "materials.id ASC"},
	OrderByCategory:         {"materials.category_id IS NULL", "materials.category_id ASC", "materials.id ASC"},
	OrderByCategoryThenName: {"materials.category_id IS NULL", "materials.category_id ASC", "materials.name ASC", "materials.id ASC"},
}

type MaterialRepository interface {
	FindAll(ctx context.Context, order MaterialOrder) ([]model.Material, error)
	FindByID(ctx context.Context, id uint) (*model.Material, error)
	Create(ctx context.Context, material *model.Material) error
	Update(ctx context.Context, material *model.Material) error
	UpdateQRCodeFile(ctx context.Context, id uint, file *string) error
	Delete(ctx context.Context, id uint) error

	// FindByCategory and ClearCategory run on tx for category deletion.
	FindByCategory(tx *gorm.DB, categoryID uint) ([]model.Material, error)
	ClearCategory(tx *gorm.DB, id uint) error
}

type materialRepo struct {
	db *gorm.DB
}

func NewMaterialRepo(db *gorm.DB) MaterialRepository {
	return &materialRepo{db}
}

func (r *materialRepo) FindAll(ctx context.Context, order MaterialOrder) ([]model.Material, error) {
	clauses, ok := orderClauses[order]
	if !ok {
		clauses = orderClauses[OrderDefault]
	}
	query := r.db.WithContext(ctx).Preload("Category")
	for _, c := range clauses {
		query = query.Order(c)
	}
	var materials []model.Material
	err := query.Find(&materials).Error
	return materials, err
}

func (r *materialRepo) FindByID(ctx context.Context, id uint) (*model.Material, error) {
	var material model.Material
	if err := r.db.WithContext(ctx).Preload("Category").First(&material, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepo) Create(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Omit("Category").Create(material).Error
}

// Update writes every column, including zero values and a null category.
func (r *materialRepo) Update(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Omit("Category").Save(material).Error
}

func (r *materialRepo) UpdateQRCodeFile(ctx context.Context, id uint, file *string) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).Where("id = ?", id).Update("qr_code_file", file).Error
}

func (r *materialRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Material{}, "id = ?", id).Error
}

func (r *materialRepo) FindByCategory(tx *gorm.DB, categoryID uint) ([]model.Material, error) {
	var materials []model.Material
	err := tx.Where("category_id = ?", categoryID).Order("id ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepo) ClearCategory(tx *gorm.DB, id uint) error {
	return tx.Model(&model.Material{}).Where("id = ?", id).Update("category_id", nil).Error
}
