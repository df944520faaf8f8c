package model

import (
	"time"

	"github.com/google/uuid"
)

type ClergyMemberModel struct {
	ClergyID       uuid.UUID `gorm:"column:clergy_id;type:uuid;default:gen_random_uuid();primaryKey" json:"clergy_id"`
	ClergyChurchID uuid.UUID `gorm:"column:clergy_church_id;type:uuid;not null;index" json:"clergy_church_id"`

	Church ChurchModel `gorm:"foreignKey:ClergyChurchID;references:ChurchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	ClergyName     string `gorm:"column:clergy_name;type:varchar(100);not null" json:"clergy_name"`
	ClergyRole     string `gorm:"column:clergy_role;type:varchar(100);not null" json:"clergy_role"` // e.g. "Head Priest", "Deacon"
	ClergyImageURL string `gorm:"column:clergy_image_url;type:text" json:"clergy_image_url"`

	ClergyCreatedAt time.Time `gorm:"column:clergy_created_at;autoCreateTime" json:"clergy_created_at"`
}

func (ClergyMemberModel) TableName() string {
	return "clergy_members"
}
