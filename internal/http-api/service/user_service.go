package service

import (
	"context"
	"errors"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error)
	GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.AdminCreateUserDTO) (*dto.UserResponse, error)
	UpdateByUsername(ctx context.Context, username string, patch dto.AdminUpdateUserDTO) (*dto.UserResponse, error)
	DeleteByUsername(ctx context.Context, username string) error
	GetSelf(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateSelf(ctx context.Context, userID string, patch dto.UpdateSelfDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error) {
	users, total, err := s.userRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.UserFromModel(&users[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dto.UserFromModel(user), nil
}

func (s *userService) Create(ctx context.Context, req dto.AdminCreateUserDTO) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if req.Username != nil {
		if _, err := s.userRepo.FindByUsername(ctx, *req.Username); err == nil {
			return nil, ErrUsernameInUse
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	// admin-created accounts skip the email flow and start active
	user := &models.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.UserFromModel(user), nil
}

func (s *userService) UpdateByUsername(ctx context.Context, username string, patch dto.AdminUpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.applyProfilePatch(ctx, user, patch.FirstName, patch.LastName, patch.Username, patch.Bio); err != nil {
		return nil, err
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.UserFromModel(user), nil
}

func (s *userService) DeleteByUsername(ctx context.Context, username string) error {
	if err := s.userRepo.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *userService) GetSelf(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dto.UserFromModel(user), nil
}

// UpdateSelf applies a partial profile update. Role and email never change
// here regardless of the request body.
func (s *userService) UpdateSelf(ctx context.Context, userID string, patch dto.UpdateSelfDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.applyProfilePatch(ctx, user, patch.FirstName, patch.LastName, patch.Username, patch.Bio); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.UserFromModel(user), nil
}

func (s *userService) applyProfilePatch(ctx context.Context, user *models.User, firstName, lastName, username, bio *string) error {
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
	if username != nil {
		existing, err := s.userRepo.FindByUsername(ctx, *username)
		if err == nil && existing.ID != user.ID {
			return ErrUsernameInUse
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user.Username = username
	}
	return nil
}
