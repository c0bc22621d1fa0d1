package templatestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"

	"github.com/billcraft/printgen/internal/sample"
)

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidVoucherType  = errors.New("invalid_voucher_type")
	ErrInvalidEngine       = errors.New("invalid_engine")
	ErrEmptyContent        = errors.New("empty_content")
	ErrNotFound            = errors.New("not_found")
)

var allowedEngines = map[string]struct{}{
	"voucher": {},
	"pongo":   {},
}

// ParseID parses a snowflake ID from its string form.
func ParseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

type CreateRequest struct {
	VoucherType string         `json:"voucher_type"`
	Name        string         `json:"name"`
	Engine      string         `json:"engine"`
	Content     string         `json:"content"`
	IsDefault   bool           `json:"is_default"`
	Style       map[string]any `json:"style"`
}

type UpdateRequest struct {
	ID      string         `json:"id"`
	Name    *string        `json:"name"`
	Engine  *string        `json:"engine"`
	Content *string        `json:"content"`
	Style   map[string]any `json:"style"`
}

type ListRequest struct {
	VoucherType string `form:"voucher_type"`
	IsDefault   *bool  `form:"is_default"`
}

// Service is the template management API used by the HTTP layer.
type Service interface {
	Create(ctx context.Context, orgID snowflake.ID, req CreateRequest) (*VoucherTemplate, error)
	List(ctx context.Context, orgID snowflake.ID, req ListRequest) ([]VoucherTemplate, error)
	GetByID(ctx context.Context, orgID snowflake.ID, id string) (*VoucherTemplate, error)
	GetDefault(ctx context.Context, orgID snowflake.ID, voucherType string) (*VoucherTemplate, error)
	Update(ctx context.Context, orgID snowflake.ID, req UpdateRequest) (*VoucherTemplate, error)
	SetDefault(ctx context.Context, orgID snowflake.ID, id string) (*VoucherTemplate, error)
	Delete(ctx context.Context, orgID snowflake.ID, id string) error
	Seed(ctx context.Context, orgID snowflake.ID) error
}

type service struct {
	repo Repository
	node *snowflake.Node
}

// NewService builds the template service on top of repo. The snowflake
// node issues template IDs.
func NewService(repo Repository, node *snowflake.Node) Service {
	return &service{repo: repo, node: node}
}

func (s *service) Create(ctx context.Context, orgID snowflake.ID, req CreateRequest) (*VoucherTemplate, error) {
	if orgID == 0 {
		return nil, ErrInvalidOrganization
	}

	tmpl := &VoucherTemplate{
		ID:          s.node.Generate(),
		OrgID:       orgID,
		VoucherType: strings.TrimSpace(req.VoucherType),
		Name:        strings.TrimSpace(req.Name),
		Engine:      strings.TrimSpace(req.Engine),
		Content:     req.Content,
		IsDefault:   req.IsDefault,
		Style:       req.Style,
	}
	if tmpl.Engine == "" {
		tmpl.Engine = "voucher"
	}
	if err := validateTemplate(tmpl); err != nil {
		return nil, err
	}

	if tmpl.IsDefault {
		if err := s.repo.ClearDefault(ctx, orgID, tmpl.VoucherType); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Insert(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *service) List(ctx context.Context, orgID snowflake.ID, req ListRequest) ([]VoucherTemplate, error) {
	if orgID == 0 {
		return nil, ErrInvalidOrganization
	}
	return s.repo.List(ctx, orgID, ListFilter{
		VoucherType: strings.TrimSpace(req.VoucherType),
		IsDefault:   req.IsDefault,
	})
}

func (s *service) GetByID(ctx context.Context, orgID snowflake.ID, id string) (*VoucherTemplate, error) {
	if orgID == 0 {
		return nil, ErrInvalidOrganization
	}
	parsed, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, orgID, parsed)
}

func (s *service) GetDefault(ctx context.Context, orgID snowflake.ID, voucherType string) (*VoucherTemplate, error) {
	if orgID == 0 {
		return nil, ErrInvalidOrganization
	}
	voucherType = strings.TrimSpace(voucherType)
	if voucherType == "" {
		return nil, ErrInvalidVoucherType
	}
	return s.repo.FindDefault(ctx, orgID, voucherType)
}

func (s *service) Update(ctx context.Context, orgID snowflake.ID, req UpdateRequest) (*VoucherTemplate, error) {
	if orgID == 0 {
		return nil, ErrInvalidOrganization
	}
	parsed, err := ParseID(req.ID)
	if err != nil {
		return nil, err
	}

	tmpl, err := s.repo.FindByID(ctx, orgID, parsed)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tmpl.Name = strings.TrimSpace(*req.Name)
	}
	if req.Engine != nil {
		tmpl.Engine = strings.TrimSpace(*req.Engine)
	}
	if req.Content != nil {
		tmpl.Content = *req.Content
	}
	if req.Style != nil {
		tmpl.Style = req.Style
	}
	if err := validateTemplate(tmpl); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *service) SetDefault(ctx context.Context, orgID snowflake.ID, id string) (*VoucherTemplate, error) {
	if orgID == 0 {
		return nil, ErrInvalidOrganization
	}
	parsed, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	tmpl, err := s.repo.FindByID(ctx, orgID, parsed)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ClearDefault(ctx, orgID, tmpl.VoucherType); err != nil {
		return nil, err
	}

	tmpl.IsDefault = true
	if err := s.repo.Update(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *service) Delete(ctx context.Context, orgID snowflake.ID, id string) error {
	if orgID == 0 {
		return ErrInvalidOrganization
	}
	parsed, err := ParseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, orgID, parsed)
}

// Seed installs the starter templates for a new organization, marking
// each as the default for its voucher type. Voucher types that already
// have templates are left alone.
func (s *service) Seed(ctx context.Context, orgID snowflake.ID) error {
	if orgID == 0 {
		return ErrInvalidOrganization
	}

	for _, voucherType := range sample.VoucherTypes() {
		existing, err := s.repo.List(ctx, orgID, ListFilter{VoucherType: voucherType})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			continue
		}

		content, err := sample.Template(voucherType)
		if err != nil {
			return fmt.Errorf("templatestore: seed %q: %w", voucherType, err)
		}
		tmpl := &VoucherTemplate{
			ID:          s.node.Generate(),
			OrgID:       orgID,
			VoucherType: voucherType,
			Name:        "Standard " + strings.ReplaceAll(voucherType, "_", " "),
			Engine:      "voucher",
			Content:     content,
			IsDefault:   true,
		}
		if err := s.repo.Insert(ctx, tmpl); err != nil {
			return err
		}
	}
	return nil
}

func validateTemplate(tmpl *VoucherTemplate) error {
	if tmpl.VoucherType == "" {
		return ErrInvalidVoucherType
	}
	if tmpl.Name == "" {
		return ErrInvalidName
	}
	if _, ok := allowedEngines[tmpl.Engine]; !ok {
		return ErrInvalidEngine
	}
	if strings.TrimSpace(tmpl.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}
