package seller

import (
	"context"
	"errors"
	"fmt"

	"damaloy/domain"
	"damaloy/pkg/logger"
)

// SellerRepository contract interface
type SellerRepository interface {
	Create(ctx context.Context, seller *domain.Seller) error
	FindByID(ctx context.Context, id uint) (domain.Seller, error)
	FindByUserID(ctx context.Context, userID uint) (domain.Seller, error)
	FindByEmail(ctx context.Context, email string) (domain.Seller, error)
	FindAll(ctx context.Context, status, excludeStatus string) ([]domain.SellerApplication, error)
	UpdateStatus(ctx context.Context, id uint, status string) (domain.Seller, error)
	Delete(ctx context.Context, id uint) (domain.Seller, error)
}

// UserRepository contract interface
type UserRepository interface {
	UpdateRole(ctx context.Context, id uint, role string) error
}

// StatsRepository contract interface
type StatsRepository interface {
	SellerStats(ctx context.Context, sellerID uint) (domain.SellerStats, error)
}

type SellerService struct {
	sellerRepo SellerRepository
	userRepo   UserRepository
	statsRepo  StatsRepository
}

func NewSellerService(sellerRepo SellerRepository, userRepo UserRepository, statsRepo StatsRepository) *SellerService {
	return &SellerService{
		sellerRepo: sellerRepo,
		userRepo:   userRepo,
		statsRepo:  statsRepo,
	}
}

// Apply files a seller application. One application per user; a second
// submission is a conflict.
func (s *SellerService) Apply(ctx context.Context, application *domain.Seller) (domain.Seller, error) {
	if application.UserID == 0 {
		return domain.Seller{}, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}

	_, err := s.sellerRepo.FindByUserID(ctx, application.UserID)
	if err == nil {
		return domain.Seller{}, fmt.Errorf("%w: you have already submitted a seller application", domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Seller{}, err
	}

	application.Status = domain.SellerStatusPending

	if err := s.sellerRepo.Create(ctx, application); err != nil {
		logger.Error("Failed to create seller application", "error", err)
		return domain.Seller{}, err
	}

	return *application, nil
}

func (s *SellerService) GetApplications(ctx context.Context, status, excludeStatus string) ([]domain.SellerApplication, error) {
	return s.sellerRepo.FindAll(ctx, status, excludeStatus)
}

func (s *SellerService) GetByEmail(ctx context.Context, email string) (domain.Seller, error) {
	return s.sellerRepo.FindByEmail(ctx, email)
}

// UpdateStatus approves or rejects an application. Approval promotes
// the owning user to the seller role.
func (s *SellerService) UpdateStatus(ctx context.Context, id uint, status string) (domain.Seller, error) {
	if status != domain.SellerStatusApproved && status != domain.SellerStatusRejected && status != domain.SellerStatusPending {
		return domain.Seller{}, fmt.Errorf("%w: invalid seller status %q", domain.ErrValidation, status)
	}

	seller, err := s.sellerRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.Seller{}, err
	}

	if status == domain.SellerStatusApproved {
		if err := s.userRepo.UpdateRole(ctx, seller.UserID, domain.RoleSeller); err != nil {
			logger.Error("Failed to sync user role after approval", "user_id", seller.UserID, "error", err)
			return domain.Seller{}, err
		}
	}

	return seller, nil
}

// Delete removes a seller and reverts the owning user to a plain user.
func (s *SellerService) Delete(ctx context.Context, id uint) error {
	seller, err := s.sellerRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateRole(ctx, seller.UserID, domain.RoleUser); err != nil {
		logger.Error("Failed to revert user role after seller deletion", "user_id", seller.UserID, "error", err)
		return err
	}

	return nil
}

func (s *SellerService) GetStats(ctx context.Context, id uint) (domain.SellerStats, error) {
	if id == 0 {
		return domain.SellerStats{}, fmt.Errorf("%w: invalid seller id", domain.ErrValidation)
	}

	return s.statsRepo.SellerStats(ctx, id)
}
