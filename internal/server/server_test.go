package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/billcraft/printgen/internal/templatestore"
	"github.com/billcraft/printgen/pkg/preview"
)

func newTestServer(t *testing.T) (*gin.Engine, snowflake.ID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&templatestore.VoucherTemplate{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := templatestore.NewService(templatestore.NewRepository(gdb), node)
	srv := New(svc, preview.New(), zap.NewNop())
	return srv.Router(), node.Generate()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, orgID snowflake.ID, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if orgID != 0 {
		req.Header.Set(orgHeader, orgID.String())
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router, _ := newTestServer(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", 0, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestMissingOrgHeader(t *testing.T) {
	router, _ := newTestServer(t)
	rec := doJSON(t, router, http.MethodGet, "/api/templates", 0, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTemplateCRUD(t *testing.T) {
	router, orgID := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/templates", orgID, map[string]any{
		"voucher_type": "sales_invoice",
		"name":         "Classic",
		"content":      "<p>{{invoice.number}}</p>",
		"is_default":   true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created templatestore.VoucherTemplate
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	id := created.ID.String()

	rec = doJSON(t, router, http.MethodGet, "/api/templates/"+id, orgID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/templates/default?voucher_type=sales_invoice", orgID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get default status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPatch, "/api/templates/"+id, orgID, map[string]any{
		"name": "Renamed",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Renamed") {
		t.Fatalf("update response missing new name: %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/templates/"+id, orgID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/templates/"+id, orgID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestCreateValidationError(t *testing.T) {
	router, orgID := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/templates", orgID, map[string]any{
		"voucher_type": "sales_invoice",
		"name":         "Broken",
		"content":      "x",
		"engine":       "jsx",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_engine") {
		t.Fatalf("body missing error code: %s", rec.Body.String())
	}
}

func TestPreviewStoredTemplate(t *testing.T) {
	router, orgID := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/templates", orgID, map[string]any{
		"voucher_type": "sales_invoice",
		"name":         "Classic",
		"content":      "<p>Invoice {{invoice.number}} for {{party.name}}</p>",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created templatestore.VoucherTemplate
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/templates/"+created.ID.String()+"/preview", orgID, map[string]any{
		"data": map[string]any{
			"invoice": map[string]any{"number": "INV-42"},
			"party":   map[string]any{"name": "Acme Traders"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp previewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode preview response: %v", err)
	}
	if !strings.Contains(resp.Document, "INV-42") || !strings.Contains(resp.Document, "Acme Traders") {
		t.Fatalf("document missing interpolated values: %s", resp.Document)
	}
	if resp.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", resp.ContentType)
	}
}

func TestPreviewAdHoc(t *testing.T) {
	router, orgID := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/preview", orgID, map[string]any{
		"template": "Total: {{totals.total_amount}}",
		"renderer": "text",
		"data": map[string]any{
			"totals": map[string]any{"total_amount": "1250.50"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp previewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Document, "Total: 1250.50") {
		t.Fatalf("unexpected document: %s", resp.Document)
	}
}

func TestPreviewAdHocRequiresTemplate(t *testing.T) {
	router, orgID := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/preview", orgID, map[string]any{
		"data": map[string]any{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSeedAndCapabilities(t *testing.T) {
	router, orgID := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/templates/seed", orgID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("seed status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/templates?voucher_type=sales_invoice", orgID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sales_invoice") {
		t.Fatalf("list missing seeded template: %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/capabilities", orgID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("capabilities status = %d", rec.Code)
	}
	for _, want := range []string{"voucher", "pongo", "html", "text"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("capabilities missing %q: %s", want, rec.Body.String())
		}
	}
}
