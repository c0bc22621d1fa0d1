// Package templatestore persists voucher print templates per
// organization: the template-selection API previews read from.
package templatestore

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// VoucherTemplate is one stored print template. A template belongs to an
// organization and a voucher type; at most one template per (org, voucher
// type) pair is the default used when previews do not name a template.
type VoucherTemplate struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID      `gorm:"not null;index:idx_voucher_templates_org_type" json:"organization_id"`
	VoucherType string            `gorm:"type:text;not null;index:idx_voucher_templates_org_type" json:"voucher_type"`
	Name        string            `gorm:"type:text;not null" json:"name"`
	Engine      string            `gorm:"type:text;not null;default:'voucher'" json:"engine"`
	Content     string            `gorm:"type:text;not null" json:"content"`
	IsDefault   bool              `gorm:"not null;default:false" json:"is_default"`
	Style       datatypes.JSONMap `gorm:"type:jsonb" json:"style"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (VoucherTemplate) TableName() string { return "voucher_templates" }
