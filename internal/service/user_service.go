package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/internal/validators"
	"reviewhub/pkg/apperror"
)

// UserService backs the admin user management surface and the
// self-service profile endpoints.
type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, username string, req *dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, username string) error
	Me(ctx context.Context, principal *models.Principal) (*models.User, error)
	UpdateMe(ctx context.Context, principal *models.Principal, req *dto.UpdateMeRequest) (*models.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	return s.users.List(ctx, search, page, pageSize)
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if err := validators.ValidateUsername(req.Username); err != nil {
		return nil, apperror.NewFieldError("username", err.Error())
	}
	if err := s.checkUnique(ctx, req.Username, req.Email, ""); err != nil {
		return nil, err
	}

	user := req.ToModel()
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if err := s.validateProfileChange(ctx, user, req.Username, req.Email); err != nil {
		return nil, err
	}

	req.ApplyTo(user)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	return mapNotFound(s.users.DeleteByUsername(ctx, username))
}

func (s *userService) Me(ctx context.Context, principal *models.Principal) (*models.User, error) {
	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

// UpdateMe applies a self-service profile edit. The request type has no
// role field, so role changes can only come through the admin surface.
func (s *userService) UpdateMe(ctx context.Context, principal *models.Principal, req *dto.UpdateMeRequest) (*models.User, error) {
	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if err := s.validateProfileChange(ctx, user, req.Username, req.Email); err != nil {
		return nil, err
	}

	req.ApplyTo(user)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) validateProfileChange(ctx context.Context, user *models.User, newUsername, newEmail *string) error {
	if newUsername != nil && *newUsername != user.Username {
		if err := validators.ValidateUsername(*newUsername); err != nil {
			return apperror.NewFieldError("username", err.Error())
		}
	}
	username := ""
	if newUsername != nil && *newUsername != user.Username {
		username = *newUsername
	}
	email := ""
	if newEmail != nil && *newEmail != user.Email {
		email = *newEmail
	}
	return s.checkUnique(ctx, username, email, user.ID)
}

// checkUnique reports taken usernames and emails per field. Empty
// arguments are skipped; excludeID ignores the user being edited.
func (s *userService) checkUnique(ctx context.Context, username, email, excludeID string) error {
	fieldErrs := apperror.FieldErrors{}

	if username != "" {
		existing, err := s.users.FindByUsername(ctx, username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			fieldErrs.Add("username", "a user with that username already exists")
		}
	}
	if email != "" {
		existing, err := s.users.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			fieldErrs.Add("email", "a user with that email already exists")
		}
	}

	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}
