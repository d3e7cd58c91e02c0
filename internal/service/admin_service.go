package service

import (
	"context"

	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/repository"
	pkgerrors "go-inventory-qr/pkg/errors"
	"go-inventory-qr/pkg/logger"
)

// AdminService handles account approval. Every call checks that actor is an
// administrator.
type AdminService interface {
	ListPending(ctx context.Context, actor *model.User) ([]model.User, error)
	Approve(ctx context.Context, actor *model.User, userID uint) (*model.User, error)
	Reject(ctx context.Context, actor *model.User, userID uint) error
}

type adminService struct {
	userRepo repository.UserRepository
	logg     *logger.Logger
}

func NewAdminService(userRepo repository.UserRepository, logg *logger.Logger) AdminService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &adminService{userRepo: userRepo, logg: logg}
}

func requireAdmin(actor *model.User) error {
	if actor == nil || !actor.IsAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "administrator access required")
	}
	return nil
}

func (s *adminService) ListPending(ctx context.Context, actor *model.User) ([]model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list pending users")
	}
	return users, nil
}

// Approve is idempotent.
func (s *adminService) Approve(ctx context.Context, actor *model.User, userID uint) (*model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user not found")
	}
	if user.Approved {
		return user, nil
	}
	if err := s.userRepo.UpdateApproved(ctx, user.ID, true); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to approve user")
	}
	user.Approved = true
	s.logg.Info(s.logg.WithField(s.logg.WithUserID(ctx, actor.ID), "approved_user_id", user.ID), "user approved")
	return user, nil
}

// Reject deletes a pending registration. Approved accounts are left alone.
func (s *adminService) Reject(ctx context.Context, actor *model.User, userID uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return lookupError(err, "user not found")
	}
	if user.Approved {
		return pkgerrors.New(pkgerrors.CodeConflict, "user is already approved")
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to reject user")
	}
	s.logg.Info(s.logg.WithField(s.logg.WithUserID(ctx, actor.ID), "rejected_user_id", user.ID), "user rejected")
	return nil
}
