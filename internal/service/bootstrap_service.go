package service

import (
	"context"
	"fmt"
	"sort"

	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/repository"
	"go-inventory-qr/pkg/config"
	pkgerrors "go-inventory-qr/pkg/errors"
	"go-inventory-qr/pkg/logger"
)

// DefaultCategories are created on first start. The names match the ones
// already stored by existing installations.
var DefaultCategories = []string{
	"Aparelhos domésticos",
	"Alvenaria",
	"Construção Civil",
	"Decoração",
	"Elétrica",
	"Escritório",
	"Fardamento",
	"Hidráulica",
	"Informática",
	"Jardinagem",
	"Limpeza",
	"Móveis",
	"Pintura",
	"Piscina",
	"Poda, jardinagem e grama",
	"Segurança",
}

type BootstrapResult struct {
	CategoriesCreated int
	AdminCreated      bool
}

type BootstrapService interface {
	Run(ctx context.Context) (*BootstrapResult, error)
}

type bootstrapService struct {
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	cfg          config.BootstrapConfig
	logg         *logger.Logger
}

func NewBootstrapService(cRepo repository.CategoryRepository, uRepo repository.UserRepository, cfg config.BootstrapConfig, logg *logger.Logger) BootstrapService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &bootstrapService{categoryRepo: cRepo, userRepo: uRepo, cfg: cfg, logg: logg}
}

// Run seeds the default categories and the first administrator. Safe to
// repeat.
func (s *bootstrapService) Run(ctx context.Context) (*BootstrapResult, error) {
	result := &BootstrapResult{}

	created, err := s.seedCategories(ctx)
	if err != nil {
		return nil, err
	}
	result.CategoriesCreated = created

	adminCreated, err := s.ensureAdmin(ctx)
	if err != nil {
		return nil, err
	}
	result.AdminCreated = adminCreated

	s.logg.Info(s.logg.WithField(ctx, "categories_created", created), "bootstrap complete")
	return result, nil
}

func (s *bootstrapService) seedCategories(ctx context.Context) (int, error) {
	names := append([]string(nil), DefaultCategories...)
	sort.Strings(names)

	created := 0
	for _, name := range names {
		_, err := s.categoryRepo.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !isNotFound(err) {
			return created, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to check category")
		}
		if err := s.categoryRepo.Create(ctx, &model.Category{Name: name}); err != nil {
			return created, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("failed to seed category %q", name))
		}
		created++
	}
	return created, nil
}

func (s *bootstrapService) ensureAdmin(ctx context.Context) (bool, error) {
	_, err := s.userRepo.FindAdmin(ctx)
	if err == nil {
		return false, nil
	}
	if !isNotFound(err) {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to look up administrator")
	}

	_, err = s.userRepo.FindByUsername(ctx, s.cfg.AdminUsername)
	if err == nil {
		return false, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("username %q is taken by a non-admin account", s.cfg.AdminUsername))
	}
	if !isNotFound(err) {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to look up administrator")
	}

	admin := &model.User{Username: s.cfg.AdminUsername, IsAdmin: true, Approved: true}
	if err := admin.SetPassword(s.cfg.AdminPassword); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to hash admin password")
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return false, writeError(err, "administrator already exists")
	}
	s.logg.Warn(s.logg.WithUserID(ctx, admin.ID), "default administrator created, change its password", nil)
	return true, nil
}
