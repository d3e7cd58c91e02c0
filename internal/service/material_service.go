package service

import (
	"context"
	"errors"
	"strings"

	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/repository"
	pkgerrors "go-inventory-qr/pkg/errors"
	"go-inventory-qr/pkg/logger"
	"go-inventory-qr/pkg/metrics"
	"go-inventory-qr/pkg/qr"
	"go-inventory-qr/pkg/validator"
)

// QRProvisioner stores and retrieves material QR images.
type QRProvisioner interface {
	Provision(ctx context.Context, id uint) (string, error)
	Remove(ctx context.Context, name string) error
	Image(ctx context.Context, name string) ([]byte, error)
}

type MaterialService interface {
	List(ctx context.Context, order repository.MaterialOrder) ([]model.Material, error)
	Get(ctx context.Context, id uint) (*model.Material, error)
	Create(ctx context.Context, input MaterialInput) (*model.Material, error)
	Update(ctx context.Context, id uint, input MaterialInput) (*model.Material, error)
	Delete(ctx context.Context, id uint) error
	RegenerateQR(ctx context.Context, id uint) (*model.Material, error)
	QRImage(ctx context.Context, id uint) ([]byte, error)
}

var orderAliases = map[string]repository.MaterialOrder{
	"todos":      repository.OrderDefault,
	"alfabetica": repository.OrderAlphabetical,
	"categoria":  repository.OrderByCategory,
	"ambos":      repository.OrderByCategoryThenName,
}

// ParseListOrder accepts the canonical order names and the legacy aliases.
// Anything else falls back to the default order.
func ParseListOrder(raw string) repository.MaterialOrder {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch order := repository.MaterialOrder(value); order {
	case repository.OrderDefault, repository.OrderAlphabetical, repository.OrderByCategory, repository.OrderByCategoryThenName:
		return order
	}
	if order, ok := orderAliases[value]; ok {
		return order
	}
	return repository.OrderDefault
}

type materialService struct {
	materialRepo repository.MaterialRepository
	categoryRepo repository.CategoryRepository
	qr           QRProvisioner
	events       EventPublisher
	metrics      *metrics.InventoryMetrics
	logg         *logger.Logger
}

func NewMaterialService(
	mRepo repository.MaterialRepository,
	cRepo repository.CategoryRepository,
	provisioner QRProvisioner,
	events EventPublisher,
	m *metrics.InventoryMetrics,
	logg *logger.Logger,
) MaterialService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &materialService{
		materialRepo: mRepo,
		categoryRepo: cRepo,
		qr:           provisioner,
		events:       publisherOrNop(events),
		metrics:      m,
		logg:         logg,
	}
}

func (s *materialService) List(ctx context.Context, order repository.MaterialOrder) ([]model.Material, error) {
	materials, err := s.materialRepo.FindAll(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list materials")
	}
	return materials, nil
}

func (s *materialService) Get(ctx context.Context, id uint) (*model.Material, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "material not found")
	}
	return material, nil
}

func (s *materialService) Create(ctx context.Context, input MaterialInput) (*model.Material, error) {
	if err := validateMaterialInput(input); err != nil {
		return nil, err
	}
	if input.Quantity.blank() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity is required")
	}
	quantity, err := input.Quantity.nonNegativeInt("quantity")
	if err != nil {
		return nil, err
	}
	requisition, err := optionalQty(input.AlertRequisitionQty, "alert_requisition_qty", 0)
	if err != nil {
		return nil, err
	}
	stock, err := optionalQty(input.AlertStockQty, "alert_stock_qty", 0)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	material := &model.Material{
		Name:                string(input.Name),
		Description:         string(input.Description),
		Quantity:            quantity,
		AlertRequisitionQty: requisition,
		AlertStockQty:       stock,
		CategoryID:          categoryID,
	}
	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, writeError(err, "material already exists")
	}
	s.metrics.IncOperation("material", "create")
	ctx = s.logg.WithField(ctx, "material_id", material.ID)

	// The record is already visible. A provisioning failure leaves it without
	// a QR reference and is reported to the caller.
	provisionErr := s.attachQR(ctx, material)

	if fresh, err := s.materialRepo.FindByID(ctx, material.ID); err == nil {
		material = fresh
	}
	s.events.Publish(EventMaterialCreated, material.ToResponse(""))

	if provisionErr != nil {
		return material, provisionErr
	}
	return material, nil
}

func (s *materialService) Update(ctx context.Context, id uint, input MaterialInput) (*model.Material, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "material not found")
	}
	if err := validateMaterialInput(input); err != nil {
		return nil, err
	}

	quantity := 0
	if !input.ZeroRequested() {
		if input.Quantity.blank() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity is required")
		}
		if quantity, err = input.Quantity.nonNegativeInt("quantity"); err != nil {
			return nil, err
		}
	}
	requisition, err := optionalQty(input.AlertRequisitionQty, "alert_requisition_qty", material.AlertRequisitionQty)
	if err != nil {
		return nil, err
	}
	stock, err := optionalQty(input.AlertStockQty, "alert_stock_qty", material.AlertStockQty)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	material.Name = string(input.Name)
	material.Description = string(input.Description)
	material.Quantity = quantity
	material.AlertRequisitionQty = requisition
	material.AlertStockQty = stock
	material.CategoryID = categoryID
	material.Category = nil

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, writeError(err, "material already exists")
	}
	s.metrics.IncOperation("material", "update")

	if fresh, err := s.materialRepo.FindByID(ctx, material.ID); err == nil {
		material = fresh
	}
	s.events.Publish(EventMaterialUpdated, material.ToResponse(""))
	return material, nil
}

func (s *materialService) Delete(ctx context.Context, id uint) error {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "material not found")
	}
	ctx = s.logg.WithField(ctx, "material_id", id)

	if material.QRCodeFile != nil {
		if err := s.qr.Remove(ctx, *material.QRCodeFile); err != nil {
			s.logg.Warn(ctx, "failed to remove qr image", err)
		}
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete material")
	}
	s.metrics.IncOperation("material", "delete")
	s.events.Publish(EventMaterialDeleted, map[string]any{"id": id, "name": material.Name})
	return nil
}

func (s *materialService) RegenerateQR(ctx context.Context, id uint) (*model.Material, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "material not found")
	}
	ctx = s.logg.WithField(ctx, "material_id", id)
	if err := s.attachQR(ctx, material); err != nil {
		return nil, err
	}
	s.metrics.IncOperation("material", "regenerate_qr")
	s.events.Publish(EventMaterialUpdated, material.ToResponse(""))
	return material, nil
}

func (s *materialService) QRImage(ctx context.Context, id uint) ([]byte, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "material not found")
	}
	if material.QRCodeFile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "qr code not generated")
	}
	data, err := s.qr.Image(ctx, *material.QRCodeFile)
	if errors.Is(err, qr.ErrImageMissing) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "qr image not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to read qr image")
	}
	return data, nil
}

// attachQR provisions the image and stores its reference on material.
func (s *materialService) attachQR(ctx context.Context, material *model.Material) error {
	file, err := s.qr.Provision(ctx, material.ID)
	if err != nil {
		s.metrics.IncQRFailure()
		s.logg.Error(ctx, "qr provisioning failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "qr code could not be generated")
	}
	if err := s.materialRepo.UpdateQRCodeFile(ctx, material.ID, &file); err != nil {
		s.metrics.IncQRFailure()
		s.logg.Error(ctx, "failed to store qr reference", err)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to store qr reference")
	}
	material.QRCodeFile = &file
	return nil
}

// resolveCategory returns nil for blank, malformed or unknown ids.
func (s *materialService) resolveCategory(ctx context.Context, raw FieldValue) (*uint, error) {
	id, ok := raw.id()
	if !ok {
		return nil, nil
	}
	category, err := s.categoryRepo.FindByID(ctx, id)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to resolve category")
	}
	return &category.ID, nil
}

func validateMaterialInput(input MaterialInput) error {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, validator.Summary(errs))
	}
	return nil
}

// optionalQty keeps fallback for a blank field.
func optionalQty(raw FieldValue, field string, fallback int) (int, error) {
	if raw.blank() {
		return fallback, nil
	}
	return raw.nonNegativeInt(field)
}
