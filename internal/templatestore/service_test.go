package templatestore

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (Service, snowflake.ID) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&VoucherTemplate{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewService(NewRepository(gdb), node), node.Generate()
}

func createTemplate(t *testing.T, svc Service, orgID snowflake.ID, req CreateRequest) *VoucherTemplate {
	t.Helper()
	tmpl, err := svc.Create(context.Background(), orgID, req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return tmpl
}

func TestCreateAndGet(t *testing.T) {
	svc, orgID := newTestService(t)

	tmpl := createTemplate(t, svc, orgID, CreateRequest{
		VoucherType: "sales_invoice",
		Name:        "Classic",
		Content:     "<p>{{invoice.number}}</p>",
		IsDefault:   true,
		Style:       map[string]any{"primary_color": "#0a6e4d"},
	})
	if tmpl.Engine != "voucher" {
		t.Fatalf("expected default engine, got %q", tmpl.Engine)
	}

	got, err := svc.GetByID(context.Background(), orgID, tmpl.ID.String())
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Name != "Classic" || !got.IsDefault {
		t.Fatalf("unexpected template %+v", got)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, orgID := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{"missing type", CreateRequest{Name: "x", Content: "y"}, ErrInvalidVoucherType},
		{"missing name", CreateRequest{VoucherType: "sales_invoice", Content: "y"}, ErrInvalidName},
		{"empty content", CreateRequest{VoucherType: "sales_invoice", Name: "x", Content: "  "}, ErrEmptyContent},
		{"bad engine", CreateRequest{VoucherType: "sales_invoice", Name: "x", Content: "y", Engine: "jsx"}, ErrInvalidEngine},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, orgID, tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	if _, err := svc.Create(ctx, 0, CreateRequest{}); !errors.Is(err, ErrInvalidOrganization) {
		t.Fatalf("expected ErrInvalidOrganization, got %v", err)
	}
}

func TestDefaultIsExclusivePerVoucherType(t *testing.T) {
	svc, orgID := newTestService(t)
	ctx := context.Background()

	first := createTemplate(t, svc, orgID, CreateRequest{
		VoucherType: "sales_invoice", Name: "A", Content: "a", IsDefault: true,
	})
	second := createTemplate(t, svc, orgID, CreateRequest{
		VoucherType: "sales_invoice", Name: "B", Content: "b", IsDefault: true,
	})

	def, err := svc.GetDefault(ctx, orgID, "sales_invoice")
	if err != nil {
		t.Fatalf("GetDefault returned error: %v", err)
	}
	if def.ID != second.ID {
		t.Fatalf("expected %v as default, got %v", second.ID, def.ID)
	}

	if _, err := svc.SetDefault(ctx, orgID, first.ID.String()); err != nil {
		t.Fatalf("SetDefault returned error: %v", err)
	}
	def, err = svc.GetDefault(ctx, orgID, "sales_invoice")
	if err != nil {
		t.Fatalf("GetDefault returned error: %v", err)
	}
	if def.ID != first.ID {
		t.Fatalf("expected %v as default after SetDefault, got %v", first.ID, def.ID)
	}

	flag := true
	defaults, err := svc.List(ctx, orgID, ListRequest{IsDefault: &flag})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(defaults) != 1 {
		t.Fatalf("expected exactly one default, got %d", len(defaults))
	}
}

func TestListFiltersByVoucherType(t *testing.T) {
	svc, orgID := newTestService(t)
	ctx := context.Background()

	createTemplate(t, svc, orgID, CreateRequest{VoucherType: "sales_invoice", Name: "A", Content: "a"})
	createTemplate(t, svc, orgID, CreateRequest{VoucherType: "receipt", Name: "B", Content: "b"})

	got, err := svc.List(ctx, orgID, ListRequest{VoucherType: "receipt"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "B" {
		t.Fatalf("unexpected list result %+v", got)
	}
}

func TestOrgScoping(t *testing.T) {
	svc, orgA := newTestService(t)
	node, _ := snowflake.NewNode(2)
	orgB := node.Generate()

	tmpl := createTemplate(t, svc, orgA, CreateRequest{VoucherType: "sales_invoice", Name: "A", Content: "a"})

	if _, err := svc.GetByID(context.Background(), orgB, tmpl.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound across orgs, got %v", err)
	}
	if err := svc.Delete(context.Background(), orgB, tmpl.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound across orgs, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	svc, orgID := newTestService(t)
	ctx := context.Background()

	tmpl := createTemplate(t, svc, orgID, CreateRequest{VoucherType: "sales_invoice", Name: "A", Content: "a"})

	name := "Renamed"
	content := "<p>new</p>"
	engine := "pongo"
	updated, err := svc.Update(ctx, orgID, UpdateRequest{
		ID:      tmpl.ID.String(),
		Name:    &name,
		Content: &content,
		Engine:  &engine,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != name || updated.Content != content || updated.Engine != engine {
		t.Fatalf("update not applied: %+v", updated)
	}

	bad := ""
	if _, err := svc.Update(ctx, orgID, UpdateRequest{ID: tmpl.ID.String(), Name: &bad}); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, orgID := newTestService(t)
	ctx := context.Background()

	tmpl := createTemplate(t, svc, orgID, CreateRequest{VoucherType: "sales_invoice", Name: "A", Content: "a"})
	if err := svc.Delete(ctx, orgID, tmpl.ID.String()); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.GetByID(ctx, orgID, tmpl.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSeed(t *testing.T) {
	svc, orgID := newTestService(t)
	ctx := context.Background()

	if err := svc.Seed(ctx, orgID); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	all, err := svc.List(ctx, orgID, ListRequest{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 seeded templates, got %d", len(all))
	}
	for _, tmpl := range all {
		if !tmpl.IsDefault {
			t.Fatalf("seeded template %q not default", tmpl.Name)
		}
	}

	// idempotent
	if err := svc.Seed(ctx, orgID); err != nil {
		t.Fatalf("second Seed returned error: %v", err)
	}
	again, _ := svc.List(ctx, orgID, ListRequest{})
	if len(again) != 2 {
		t.Fatalf("Seed not idempotent, got %d templates", len(again))
	}
}

func TestParseID(t *testing.T) {
	if _, err := ParseID("not-a-number"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
