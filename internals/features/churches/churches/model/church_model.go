package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Lifecycle status of a listing. Transitions are pending→approved and
// pending→rejected only; isVerified is coupled to approval and never set by
// any other path.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ServiceTime is one schedule entry as displayed ("Sunday",
// "4:00 AM - 11:00 AM", "Divine Liturgy").
type ServiceTime struct {
	Day         string `json:"day"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

type Features struct {
	HasEnglishService    bool `json:"hasEnglishService"`
	HasParking           bool `json:"hasParking"`
	WheelchairAccessible bool `json:"wheelchairAccessible"`
	HasSchool            bool `json:"hasSchool"`
}

// DonationInfo is displayed contact data only; no payment flow exists.
type DonationInfo struct {
	Zelle   *string `json:"zelle,omitempty"`
	Website *string `json:"website,omitempty"`
}

type ChurchModel struct {
	ChurchID          uuid.UUID `gorm:"column:church_id;type:uuid;default:gen_random_uuid();primaryKey" json:"church_id"`
	ChurchName        string    `gorm:"column:church_name;type:varchar(150);not null" json:"church_name"`
	ChurchAddress     string    `gorm:"column:church_address;type:varchar(200);not null" json:"church_address"`
	ChurchCity        string    `gorm:"column:church_city;type:varchar(100);not null;index" json:"church_city"`
	ChurchState       string    `gorm:"column:church_state;type:varchar(30);not null" json:"church_state"`
	ChurchZip         string    `gorm:"column:church_zip;type:varchar(10);not null;index" json:"church_zip"`
	ChurchPhone       string    `gorm:"column:church_phone;type:varchar(30)" json:"church_phone"`
	ChurchDescription string    `gorm:"column:church_description;type:text" json:"church_description"`

	ChurchImageURL         string `gorm:"column:church_image_url;type:text" json:"church_image_url"`
	ChurchInteriorImageURL string `gorm:"column:church_interior_image_url;type:text" json:"church_interior_image_url"`

	ChurchMembers         int            `gorm:"column:church_members;not null;default:0" json:"church_members"`
	ChurchServices        pq.StringArray `gorm:"column:church_services;type:text[]" json:"church_services"`
	ChurchServiceSchedule []ServiceTime  `gorm:"column:church_service_schedule;type:jsonb;serializer:json" json:"church_service_schedule"`
	ChurchLanguages       pq.StringArray `gorm:"column:church_languages;type:text[]" json:"church_languages"`
	ChurchFeatures        Features       `gorm:"column:church_features;type:jsonb;serializer:json" json:"church_features"`
	ChurchDonationInfo    DonationInfo   `gorm:"column:church_donation_info;type:jsonb;serializer:json" json:"church_donation_info"`

	ChurchLatitude  *float64 `gorm:"column:church_latitude;type:decimal(9,6)" json:"church_latitude"`
	ChurchLongitude *float64 `gorm:"column:church_longitude;type:decimal(9,6)" json:"church_longitude"`

	ChurchIsVerified bool   `gorm:"column:church_is_verified;not null;default:false" json:"church_is_verified"`
	ChurchStatus     string `gorm:"column:church_status;type:varchar(20);not null;default:'pending';index" json:"church_status"`

	// Legacy single-owner column. The church_admins join table is the current
	// ownership model; authority checks consult both (see features/churches/admins).
	ChurchAdminID *uuid.UUID `gorm:"column:church_admin_id;type:uuid;index" json:"church_admin_id,omitempty"`

	ChurchVerificationDocURL *string `gorm:"column:church_verification_doc_url;type:text" json:"church_verification_doc_url,omitempty"`

	ChurchCreatedAt time.Time      `gorm:"column:church_created_at;autoCreateTime" json:"church_created_at"`
	ChurchUpdatedAt time.Time      `gorm:"column:church_updated_at;autoUpdateTime" json:"church_updated_at"`
	ChurchDeletedAt gorm.DeletedAt `gorm:"column:church_deleted_at;index" json:"church_deleted_at,omitempty"`
}

func (ChurchModel) TableName() string {
	return "churches"
}
