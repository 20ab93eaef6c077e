package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-crud-portal/internal/domain"
	"go-crud-portal/internal/service"
)

type fakeUserRepo struct {
	users   map[string]domain.User
	listErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) FindAll(context.Context) ([]domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByFirstNameContaining(_ context.Context, s string) ([]domain.User, error) {
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(s))
	var out []domain.User
	for _, u := range r.users {
		if re.MatchString(u.FirstName) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByEmailRegex(_ context.Context, pattern string) ([]domain.User, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	var out []domain.User
	for _, u := range r.users {
		if re.MatchString(u.Email) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Insert(_ context.Context, u *domain.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID.Hex()] = *u
	return nil
}

func (r *fakeUserRepo) Replace(_ context.Context, u *domain.User) error {
	r.users[u.ID.Hex()] = *u
	return nil
}

func (r *fakeUserRepo) DeleteByID(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func newPortalServer(repo *fakeUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewUserService(repo)
	h := NewPortalHandler(svc, zap.NewNop())
	r := gin.New()
	h.MountPortal(r.Group("/portal"))
	return r
}

func TestPortalHandler(t *testing.T) {
	t.Run("RendersUserTable", func(t *testing.T) {
		repo := newFakeUserRepo()
		u := domain.User{Username: "alice", Email: "alice@x.com", FirstName: "Alice", LastName: "Smith"}
		require.NoError(t, repo.Insert(context.Background(), &u))

		r := newPortalServer(repo)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portal/users", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		require.Contains(t, body, "<h3>User Management Portlet</h3>")
		require.Contains(t, body, "<th>Username</th><th>Email</th><th>First Name</th><th>Last Name</th><th>Actions</th>")
		require.Contains(t, body, "<td>alice</td>")
		require.Contains(t, body, "action=deleteUser&userId="+u.ID.Hex())
	})

	t.Run("AddUserActionCreatesAndRedirects", func(t *testing.T) {
		repo := newFakeUserRepo()
		r := newPortalServer(repo)

		form := url.Values{
			"action":    {"addUser"},
			"username":  {"bob"},
			"email":     {"bob@x.com"},
			"firstName": {"Bob"},
			"lastName":  {"Lee"},
		}
		req := httptest.NewRequest(http.MethodPost, "/portal/users", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/portal/users", w.Header().Get("Location"))
		require.Len(t, repo.users, 1)
		for _, u := range repo.users {
			require.Equal(t, "bob", u.Username)
			require.False(t, u.CreatedAt.IsZero())
			require.Equal(t, u.CreatedAt, u.UpdatedAt)
		}
	})

	t.Run("DeleteUserActionViaLink", func(t *testing.T) {
		repo := newFakeUserRepo()
		u := domain.User{Username: "gone", Email: "gone@x.com"}
		require.NoError(t, repo.Insert(context.Background(), &u))

		r := newPortalServer(repo)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portal/users?action=deleteUser&userId="+u.ID.Hex(), nil))

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Empty(t, repo.users)
	})

	t.Run("UnknownActionSilentlyIgnored", func(t *testing.T) {
		repo := newFakeUserRepo()
		u := domain.User{Username: "stay", Email: "stay@x.com"}
		require.NoError(t, repo.Insert(context.Background(), &u))

		r := newPortalServer(repo)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portal/users?action=banUser&userId="+u.ID.Hex(), nil))

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Len(t, repo.users, 1)
	})

	t.Run("ListFailureRendersInlineError", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.listErr = errors.New("mongo is down")

		r := newPortalServer(repo)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portal/users", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "<div class='error'>Error loading users: mongo is down</div>")
	})
}
