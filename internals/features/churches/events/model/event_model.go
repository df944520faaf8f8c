package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	churchModel "churchfinder_backend/internals/features/churches/churches/model"
)

// ChurchEventModel is one calendar entry. Events belong to the hosting
// church: public listings join on live approved churches only, so events of
// rejected or soft-deleted churches never surface, and a hard purge of the
// church row removes them through the cascading FK.
type ChurchEventModel struct {
	EventID       uuid.UUID `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventChurchID uuid.UUID `gorm:"column:event_church_id;type:uuid;not null;index" json:"event_church_id"`

	Church churchModel.ChurchModel `gorm:"foreignKey:EventChurchID;references:ChurchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	EventTitle       string    `gorm:"column:event_title;type:varchar(150);not null" json:"event_title"`
	EventType        string    `gorm:"column:event_type;type:varchar(50);not null;index" json:"event_type"` // e.g. "Holiday", "Bible Study"
	EventDate        time.Time `gorm:"column:event_date;not null;index" json:"event_date"`
	EventLocation    string    `gorm:"column:event_location;type:varchar(200)" json:"event_location"`
	EventDescription string    `gorm:"column:event_description;type:text" json:"event_description"`
	EventImageURL    string    `gorm:"column:event_image_url;type:text" json:"event_image_url"`

	EventCreatedAt time.Time      `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time      `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt gorm.DeletedAt `gorm:"column:event_deleted_at;index" json:"event_deleted_at,omitempty"`
}

func (ChurchEventModel) TableName() string {
	return "events"
}
