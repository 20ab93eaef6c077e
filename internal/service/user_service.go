package service

import (
	"context"
	"fmt"
	"time"

	"go-crud-portal/internal/domain"
)

// UserService 用户目录：时间戳规则在这一层维护。
// Update 是先读后写，不保证原子性，并发写以后写入者为准。
type UserService struct {
	repo domain.UserRepository
	now  func() time.Time
}

func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) SearchByFirstName(ctx context.Context, firstName string) ([]domain.User, error) {
	return s.repo.FindByFirstNameContaining(ctx, firstName)
}

func (s *UserService) SearchByEmailPattern(ctx context.Context, pattern string) ([]domain.User, error) {
	return s.repo.FindByEmailRegex(ctx, pattern)
}

// Create 两个时间戳都盖成当前时间，调用方传入的值会被覆盖。
// 不做 username/email 查重。
func (s *UserService) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	now := s.now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := s.repo.Insert(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update 覆盖四个可变字段，刷新 UpdatedAt，CreatedAt 保持原值。
// id 不存在时返回 ErrUserNotFound，且不发生任何写入。
func (s *UserService) Update(ctx context.Context, id string, patch domain.User) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	u.Username = patch.Username
	u.Email = patch.Email
	u.FirstName = patch.FirstName
	u.LastName = patch.LastName
	u.UpdatedAt = s.now().UTC()
	if err := s.repo.Replace(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete 按 id 删除；id 不存在时静默成功
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}
