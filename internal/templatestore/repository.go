package templatestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the persistence seam for voucher templates.
type Repository interface {
	Insert(ctx context.Context, tmpl *VoucherTemplate) error
	Update(ctx context.Context, tmpl *VoucherTemplate) error
	Delete(ctx context.Context, orgID, id snowflake.ID) error
	FindByID(ctx context.Context, orgID, id snowflake.ID) (*VoucherTemplate, error)
	FindDefault(ctx context.Context, orgID snowflake.ID, voucherType string) (*VoucherTemplate, error)
	List(ctx context.Context, orgID snowflake.ID, filter ListFilter) ([]VoucherTemplate, error)
	ClearDefault(ctx context.Context, orgID snowflake.ID, voucherType string) error
}

// ListFilter narrows List results.
type ListFilter struct {
	VoucherType string
	IsDefault   *bool
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns the gorm-backed repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Insert(ctx context.Context, tmpl *VoucherTemplate) error {
	if err := r.db.WithContext(ctx).Create(tmpl).Error; err != nil {
		return fmt.Errorf("templatestore: insert template: %w", err)
	}
	return nil
}

func (r *gormRepository) Update(ctx context.Context, tmpl *VoucherTemplate) error {
	result := r.db.WithContext(ctx).
		Where("org_id = ?", tmpl.OrgID).
		Save(tmpl)
	if result.Error != nil {
		return fmt.Errorf("templatestore: update template: %w", result.Error)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, orgID, id snowflake.ID) error {
	result := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&VoucherTemplate{})
	if result.Error != nil {
		return fmt.Errorf("templatestore: delete template: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, orgID, id snowflake.ID) (*VoucherTemplate, error) {
	var tmpl VoucherTemplate
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("templatestore: find template: %w", err)
	}
	return &tmpl, nil
}

func (r *gormRepository) FindDefault(ctx context.Context, orgID snowflake.ID, voucherType string) (*VoucherTemplate, error) {
	var tmpl VoucherTemplate
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND voucher_type = ? AND is_default = ?", orgID, voucherType, true).
		First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("templatestore: find default template: %w", err)
	}
	return &tmpl, nil
}

func (r *gormRepository) List(ctx context.Context, orgID snowflake.ID, filter ListFilter) ([]VoucherTemplate, error) {
	query := r.db.WithContext(ctx).Where("org_id = ?", orgID)
	if filter.VoucherType != "" {
		query = query.Where("voucher_type = ?", filter.VoucherType)
	}
	if filter.IsDefault != nil {
		query = query.Where("is_default = ?", *filter.IsDefault)
	}

	var templates []VoucherTemplate
	if err := query.Order("voucher_type, name").Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("templatestore: list templates: %w", err)
	}
	return templates, nil
}

func (r *gormRepository) ClearDefault(ctx context.Context, orgID snowflake.ID, voucherType string) error {
	err := r.db.WithContext(ctx).
		Model(&VoucherTemplate{}).
		Where("org_id = ? AND voucher_type = ? AND is_default = ?", orgID, voucherType, true).
		Update("is_default", false).Error
	if err != nil {
		return fmt.Errorf("templatestore: clear default: %w", err)
	}
	return nil
}
