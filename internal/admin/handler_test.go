package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/coreyonbreeze/pbc-x402-api/internal/catalog"
	"github.com/coreyonbreeze/pbc-x402-api/internal/config"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		PaymentMode:  config.ModeDemo,
		Network:      "base-sepolia",
		StrictAmount: false,
	}
	h := NewHandler(cfg, catalog.NewStore(catalog.Builtin()), nil, nil)

	r := gin.New()
	r.GET("/admin/payment", h.PaymentInfo)
	r.GET("/admin/payment/intents/:id", h.IntentStatus)
	r.POST("/admin/catalog/reload", h.ReloadCatalog)
	return r
}

// The demo branch must be visible to operators, not silently substituted.
func TestPaymentInfoReportsDemoMode(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin/payment", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"demo"`) {
		t.Errorf("expected demo mode in body, got %s", w.Body.String())
	}
}

func TestIntentStatusConflictsInDemoMode(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin/payment/intents/pi_123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestReloadWithoutDatabaseConflicts(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/admin/catalog/reload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}
