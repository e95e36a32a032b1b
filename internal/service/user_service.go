package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gatherly/internal/cache"
	apperrors "gatherly/internal/errors"
	"gatherly/internal/model"
	"gatherly/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ProfilePatch carries a partial profile update.
type ProfilePatch struct {
	Name  *string
	Email *string
}

// UserService exposes profile and admin user operations.
type UserService interface {
	Get(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, patch ProfilePatch) (*model.User, error)
	List(ctx context.Context, page, limit int) ([]model.User, error)
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Get retrieves a user by ID, cache-aside.
func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, storageErr("find user", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdateProfile applies the supplied fields. A changed email is re-checked for
// uniqueness against other users before the write.
func (s *userService) UpdateProfile(ctx context.Context, id uint, patch ProfilePatch) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, storageErr("find user", err)
	}

	if patch.Email != nil && *patch.Email != user.Email {
		existing, err := s.repo.FindByEmail(ctx, *patch.Email)
		if err == nil && existing != nil && existing.ID != id {
			return nil, apperrors.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storageErr("check email", err)
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, storageErr("update user", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	return user, nil
}

// List returns users, newest first. Admin-only at the boundary.
func (s *userService) List(ctx context.Context, page, limit int) ([]model.User, error) {
	l, offset := pageBounds(page, limit)
	users, err := s.repo.List(ctx, l, offset)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

// Delete removes a user, nulling their events' creator reference and dropping
// their RSVPs. Admin-only at the boundary.
func (s *userService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return storageErr("delete user", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	return nil
}
