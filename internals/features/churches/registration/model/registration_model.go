package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	churchModel "churchfinder_backend/internals/features/churches/churches/model"
)

// Registration wizard steps. The flow is linear and forward/back navigable;
// submitted is terminal.
const (
	StepAdminInfo     = "step_admin_info"
	StepChurchInfo    = "step_church_info"
	StepChurchDetails = "step_church_details"
	StepSubmitted     = "submitted"
)

// ScheduleEntry is one service-schedule row as the form collects it:
// 24-hour clock values plus a repeat frequency.
type ScheduleEntry struct {
	Day         string `json:"day"`
	StartTime   string `json:"startTime"` // "HH:MM", 24-hour
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
	Repeat      string `json:"repeat"`
}

// FormData is everything the wizard collects across its steps. Saved as a
// single jsonb blob on the draft so partial progress survives sessions.
type FormData struct {
	Phone       string                `json:"phone"`
	Name        string                `json:"name"`
	Address     string                `json:"address"`
	City        string                `json:"city"`
	State       string                `json:"state"`
	Zip         string                `json:"zip"`
	Description string                `json:"description"`

	ServiceSchedule []ScheduleEntry      `json:"serviceSchedule"`
	Services        []string             `json:"services"`
	Languages       []string             `json:"languages"`
	Features        churchModel.Features `json:"features"`
}

// RegistrationModel is the per-user server-side draft of the church
// registration wizard. One active draft per user.
type RegistrationModel struct {
	RegistrationID     uuid.UUID `gorm:"column:registration_id;type:uuid;default:gen_random_uuid();primaryKey" json:"registration_id"`
	RegistrationUserID uuid.UUID `gorm:"column:registration_user_id;type:uuid;not null;uniqueIndex" json:"registration_user_id"`

	RegistrationStep string                        `gorm:"column:registration_step;type:varchar(32);not null;default:'step_admin_info'" json:"registration_step"`
	RegistrationForm datatypes.JSONType[FormData]  `gorm:"column:registration_form;type:jsonb" json:"registration_form"`

	// Blob key of an image uploaded before the church record exists. Re-keyed
	// to the church id during submission.
	RegistrationTempImageKey *string `gorm:"column:registration_temp_image_key;type:text" json:"registration_temp_image_key,omitempty"`

	// Set once submission completes.
	RegistrationChurchID *uuid.UUID `gorm:"column:registration_church_id;type:uuid" json:"registration_church_id,omitempty"`

	RegistrationCreatedAt time.Time      `gorm:"column:registration_created_at;autoCreateTime" json:"registration_created_at"`
	RegistrationUpdatedAt time.Time      `gorm:"column:registration_updated_at;autoUpdateTime" json:"registration_updated_at"`
	RegistrationDeletedAt gorm.DeletedAt `gorm:"column:registration_deleted_at;index" json:"-"`
}

func (RegistrationModel) TableName() string {
	return "church_registrations"
}
