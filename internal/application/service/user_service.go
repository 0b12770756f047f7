package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/regoline/nina-controle/internal/domain/entity"
	"github.com/regoline/nina-controle/internal/domain/repository"
	"github.com/regoline/nina-controle/pkg/apperror"
	"github.com/regoline/nina-controle/pkg/utils"
)

// UserInput is the payload for creating a user account.
type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserService manages accounts. All operations here are admin-only; the
// routing layer enforces that.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return users, nil
}

// Create adds a new account with a unique username.
func (s *UserService) Create(ctx context.Context, input *UserInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperror.NewBadRequestError("Username is required")
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewBadRequestError("Password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewAppError(500, "Failed to hash password")
	}

	user := &entity.User{
		Username: username,
		Password: hashed,
		IsAdmin:  input.IsAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return user, nil
}

// ToggleAdmin flips the admin flag. Demoting the last remaining admin is
// refused so the system never locks itself out.
func (s *UserService) ToggleAdmin(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if user.IsAdmin {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return nil, apperror.NewStorageError(err)
		}
		if admins <= 1 {
			return nil, apperror.NewBadRequestError("Cannot demote the last admin")
		}
	}

	user.IsAdmin = !user.IsAdmin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return user, nil
}

// Delete removes an account. The last remaining admin cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStorageError(err)
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	if user.IsAdmin {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return apperror.NewStorageError(err)
		}
		if admins <= 1 {
			return apperror.NewBadRequestError("Cannot delete the last admin")
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return apperror.NewStorageError(err)
	}
	return nil
}
