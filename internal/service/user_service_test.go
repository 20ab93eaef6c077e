package service

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-crud-portal/internal/domain"
)

type memUserRepo struct {
	mu       sync.Mutex
	users    map[string]domain.User
	replaces int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) FindAll(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByFirstNameContaining(_ context.Context, firstName string) ([]domain.User, error) {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(firstName))
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if re.MatchString(u.FirstName) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) FindByEmailRegex(_ context.Context, pattern string) ([]domain.User, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if re.MatchString(u.Email) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Insert(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID.Hex()] = *u
	return nil
}

func (r *memUserRepo) Replace(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces++
	r.users[u.ID.Hex()] = *u
	return nil
}

func (r *memUserRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("Create_StampsBothTimestamps", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := NewUserService(repo)
		fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return fixed }

		created, err := svc.Create(ctx, domain.User{
			Username:  "bob",
			Email:     "bob@x.com",
			FirstName: "Bob",
			LastName:  "Lee",
			// 调用方给的时间戳必须被覆盖
			CreatedAt: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.False(t, created.ID.IsZero())
		require.Equal(t, fixed, created.CreatedAt)
		require.Equal(t, created.CreatedAt, created.UpdatedAt)
	})

	t.Run("Create_AllowsDuplicateUsername", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := NewUserService(repo)

		first, err := svc.Create(ctx, domain.User{Username: "dup", Email: "a@x.com"})
		require.NoError(t, err)
		second, err := svc.Create(ctx, domain.User{Username: "dup", Email: "b@x.com"})
		require.NoError(t, err)
		require.NotEqual(t, first.ID, second.ID)

		all, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("Update_PreservesCreatedAtAndRefreshesUpdatedAt", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := NewUserService(repo)
		t1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		t2 := t1.Add(time.Hour)
		svc.now = func() time.Time { return t1 }

		created, err := svc.Create(ctx, domain.User{Username: "bob", Email: "bob@x.com"})
		require.NoError(t, err)

		svc.now = func() time.Time { return t2 }
		updated, err := svc.Update(ctx, created.ID.Hex(), domain.User{
			Username:  "bob2",
			Email:     "bob2@x.com",
			FirstName: "Bob",
			LastName:  "Lee",
		})
		require.NoError(t, err)
		require.Equal(t, created.ID, updated.ID)
		require.Equal(t, "bob2", updated.Username)
		require.Equal(t, t1, updated.CreatedAt)
		require.Equal(t, t2, updated.UpdatedAt)
		require.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("Update_MissingID_FailsWithoutWrite", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := NewUserService(repo)

		_, err := svc.Update(ctx, primitive.NewObjectID().Hex(), domain.User{Username: "x"})
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.Zero(t, repo.replaces)
		require.Empty(t, repo.users)
	})

	t.Run("Delete_MissingID_IsNoop", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := NewUserService(repo)

		_, err := svc.Create(ctx, domain.User{Username: "keep", Email: "keep@x.com"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, primitive.NewObjectID().Hex()))
		all, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("SearchByEmailPattern_CaseInsensitive", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := NewUserService(repo)

		_, err := svc.Create(ctx, domain.User{Username: "a1", Email: "ALICE@example.com"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, domain.User{Username: "a2", Email: "team-alice@corp.io"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, domain.User{Username: "b", Email: "bob@example.com"})
		require.NoError(t, err)

		got, err := svc.SearchByEmailPattern(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, u := range got {
			require.NotEqual(t, "bob@example.com", u.Email)
		}

		none, err := svc.SearchByEmailPattern(ctx, "charlie")
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("GetByID_AbsentIsNilNotError", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := NewUserService(repo)

		u, err := svc.GetByID(ctx, primitive.NewObjectID().Hex())
		require.NoError(t, err)
		require.Nil(t, u)
	})

	t.Run("Scenario_CreateUpdateDelete", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := NewUserService(repo)

		created, err := svc.Create(ctx, domain.User{
			Username: "bob", Email: "bob@x.com", FirstName: "Bob", LastName: "Lee",
		})
		require.NoError(t, err)
		require.False(t, created.ID.IsZero())
		require.Equal(t, created.CreatedAt, created.UpdatedAt)

		time.Sleep(5 * time.Millisecond)

		updated, err := svc.Update(ctx, created.ID.Hex(), domain.User{
			Username: "bob2", Email: "bob@x.com", FirstName: "Bob", LastName: "Lee",
		})
		require.NoError(t, err)
		require.Equal(t, created.ID, updated.ID)
		require.Equal(t, created.CreatedAt, updated.CreatedAt)
		require.Equal(t, "bob2", updated.Username)
		require.True(t, updated.UpdatedAt.After(created.UpdatedAt))

		require.NoError(t, svc.Delete(ctx, created.ID.Hex()))
		gone, err := svc.GetByID(ctx, created.ID.Hex())
		require.NoError(t, err)
		require.Nil(t, gone)
	})
}
