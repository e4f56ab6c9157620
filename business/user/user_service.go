package user

import (
	"context"
	"errors"
	"fmt"

	"damaloy/domain"
	"damaloy/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateAddress(ctx context.Context, id uint, address string) error
	Delete(ctx context.Context, id uint) (domain.User, error)
}

const defaultPhotoURL = "https://via.placeholder.com/150"

var validRoles = map[string]bool{
	domain.RoleUser:   true,
	domain.RoleSeller: true,
	domain.RoleAdmin:  true,
}

type UserService struct {
	userRepo UserRepository
	validate *validator.Validate
}

func NewUserService(userRepo UserRepository, validate *validator.Validate) *UserService {
	return &UserService{
		userRepo: userRepo,
		validate: validate,
	}
}

// CreateUser registers a user record for an identity the external
// provider vouched for. Creating an already-known email is not an
// error: the existing record is returned with created=false.
func (s *UserService) CreateUser(ctx context.Context, user *domain.User) (domain.User, bool, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		return domain.User{}, false, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, false, err
	}

	if user.PhotoURL == "" {
		user.PhotoURL = defaultPhotoURL
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.Error("Failed to create user", "error", err)
		return domain.User{}, false, err
	}

	logger.Info("User created", "user_id", user.ID, "email", user.Email)

	return *user, true, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.userRepo.FindByEmail(ctx, email)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.FindAll(ctx)
}

// UpdateUser applies a partial update: empty fields keep their current
// value.
func (s *UserService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if updateData.Name != "" {
		existing.Name = updateData.Name
	}

	if updateData.Email != "" {
		if err := s.validate.Var(updateData.Email, "required,email"); err != nil {
			return domain.User{}, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
		}

		other, err := s.userRepo.FindByEmail(ctx, updateData.Email)
		if err == nil && other.ID != id {
			return domain.User{}, fmt.Errorf("%w: email already exists", domain.ErrConflict)
		}
		existing.Email = updateData.Email
	}

	if updateData.PhotoURL != "" {
		existing.PhotoURL = updateData.PhotoURL
	}

	if updateData.Role != "" {
		if !validRoles[updateData.Role] {
			return domain.User{}, fmt.Errorf("%w: invalid role %q", domain.ErrValidation, updateData.Role)
		}
		existing.Role = updateData.Role
	}

	if err := s.userRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update user", "user_id", id, "error", err)
		return domain.User{}, err
	}

	return existing, nil
}

func (s *UserService) UpdateAddress(ctx context.Context, id uint, address string) (domain.User, error) {
	if address == "" {
		return domain.User{}, fmt.Errorf("%w: address is required", domain.ErrValidation)
	}

	if err := s.userRepo.UpdateAddress(ctx, id, address); err != nil {
		return domain.User{}, err
	}

	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) (domain.User, error) {
	return s.userRepo.Delete(ctx, id)
}
