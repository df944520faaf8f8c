package model

import (
	"time"

	"github.com/google/uuid"
)

// ChurchAdminModel links a user to a church they administer. Churches also
// carry a legacy single church_admin_id column; authority checks consult
// both (see the admins package).
type ChurchAdminModel struct {
	ChurchAdminID       uuid.UUID `gorm:"column:church_admin_id;type:uuid;default:gen_random_uuid();primaryKey" json:"church_admin_id"`
	ChurchAdminChurchID uuid.UUID `gorm:"column:church_admin_church_id;type:uuid;not null;index;uniqueIndex:idx_church_admin_pair" json:"church_admin_church_id"`
	ChurchAdminUserID   uuid.UUID `gorm:"column:church_admin_user_id;type:uuid;not null;index;uniqueIndex:idx_church_admin_pair" json:"church_admin_user_id"`

	ChurchAdminIsActive bool `gorm:"column:church_admin_is_active;not null;default:true" json:"church_admin_is_active"`

	ChurchAdminCreatedAt time.Time `gorm:"column:church_admin_created_at;autoCreateTime" json:"church_admin_created_at"`
}

func (ChurchAdminModel) TableName() string {
	return "church_admins"
}
