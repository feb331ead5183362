package modules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelgrove/storefront/internal/application"
	"github.com/pixelgrove/storefront/internal/domain/entity"
	repo "github.com/pixelgrove/storefront/internal/domain/repository"
	handlers "github.com/pixelgrove/storefront/internal/interface/http"
	"github.com/pixelgrove/storefront/pkg/helpers"
)

// emptyProductRepo answers not-found for everything; enough to route-test
// the thread without a database.
type emptyProductRepo struct{}

func (emptyProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (emptyProductRepo) Update(context.Context, *entity.Product) error { return repo.ErrNotFound }
func (emptyProductRepo) Delete(context.Context, string) error          { return repo.ErrNotFound }
func (emptyProductRepo) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, repo.ErrNotFound
}
func (emptyProductRepo) GetByIDs(context.Context, []string) (map[string]*entity.Product, error) {
	return map[string]*entity.Product{}, nil
}
func (emptyProductRepo) List(context.Context) ([]entity.Product, error) {
	return []entity.Product{}, nil
}
func (emptyProductRepo) SetImage(context.Context, string, string) error { return repo.ErrNotFound }

type emptyCommentRepo struct{}

func (emptyCommentRepo) Insert(context.Context, *entity.Comment) error { return nil }
func (emptyCommentRepo) ListByProduct(context.Context, string) ([]entity.Comment, error) {
	return []entity.Comment{}, nil
}
func (emptyCommentRepo) Get(context.Context, string, string) (*entity.Comment, error) {
	return nil, repo.ErrNoComment
}
func (emptyCommentRepo) UpdateText(context.Context, string, string, string) error {
	return repo.ErrNoComment
}
func (emptyCommentRepo) Delete(context.Context, string, string) error { return nil }
func (emptyCommentRepo) Like(context.Context, string, string, string) (int, error) {
	return 0, repo.ErrNoComment
}
func (emptyCommentRepo) InsertReply(context.Context, string, string, *entity.Reply) error {
	return repo.ErrNoComment
}

func commentTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := application.NewCommentService(emptyCommentRepo{}, emptyProductRepo{}, nil)
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, time.Hour)
	m := NewCommentModule(handlers.NewCommentHandler(svc), jwt)

	engine := gin.New()
	m.Register(engine.Group("/api"))
	return engine
}

// Reading a product's thread needs no session; writing to it does.
func TestCommentThreadReadIsPublic(t *testing.T) {
	engine := commentTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/0c6f4f9e-52b0-4d4e-9f6a-1d2e3f405060/comments", nil)
	engine.ServeHTTP(w, req)

	// Unknown product, so 404; the point is the request got past auth.
	require.NotEqual(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentThreadWritesRequireSession(t *testing.T) {
	engine := commentTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products/0c6f4f9e-52b0-4d4e-9f6a-1d2e3f405060/comments", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
