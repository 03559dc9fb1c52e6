package menu

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/coreyonbreeze/pbc-x402-api/internal/catalog"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(catalog.NewStore(catalog.Builtin()))

	r := gin.New()
	menus := r.Group("/menu")
	{
		menus.GET("", h.List)
		menus.GET("/calculate", h.Calculate)
		menus.GET("/:id", h.Get)
	}
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListMenu(t *testing.T) {
	r := newTestRouter(t)

	w := get(t, r, "/menu")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "brisket") {
		t.Errorf("expected brisket on the menu, got %s", w.Body.String())
	}
}

func TestGetItem(t *testing.T) {
	r := newTestRouter(t)

	w := get(t, r, "/menu/chips")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	w = get(t, r, "/menu/not-a-real-id")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestCalculate(t *testing.T) {
	r := newTestRouter(t)

	w := get(t, r, "/menu/calculate?items=brisket,chips")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "13.59") {
		t.Errorf("expected total 13.59, got %s", w.Body.String())
	}
}

func TestCalculateRejectsUnknownOnlyBaskets(t *testing.T) {
	r := newTestRouter(t)

	w := get(t, r, "/menu/calculate?items=unicorn")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unicorn") {
		t.Errorf("expected unknown id in body, got %s", w.Body.String())
	}
}

func TestCalculateRequiresItemsParam(t *testing.T) {
	r := newTestRouter(t)

	w := get(t, r, "/menu/calculate")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
