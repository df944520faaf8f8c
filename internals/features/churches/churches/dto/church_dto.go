package dto

import (
	"time"

	"github.com/google/uuid"

	"churchfinder_backend/internals/features/churches/churches/model"
)

// Coordinates as the client consumes them.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ClergyMemberResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	ImageURL string    `json:"imageUrl"`
}

// ChurchResponse is the wire shape of a listing. Distance is attached only
// during a search pass with a known user location; it is never persisted.
type ChurchResponse struct {
	ID                  uuid.UUID              `json:"id"`
	Name                string                 `json:"name"`
	Address             string                 `json:"address"`
	City                string                 `json:"city"`
	State               string                 `json:"state"`
	Zip                 string                 `json:"zip"`
	Phone               string                 `json:"phone"`
	Description         string                 `json:"description"`
	ImageURL            string                 `json:"imageUrl"`
	InteriorImageURL    string                 `json:"interiorImageUrl,omitempty"`
	Members             int                    `json:"members"`
	Clergy              []ClergyMemberResponse `json:"clergy"`
	Services            []string               `json:"services"`
	ServiceSchedule     []model.ServiceTime    `json:"serviceSchedule"`
	Languages           []string               `json:"languages"`
	Features            model.Features         `json:"features"`
	DonationInfo        model.DonationInfo     `json:"donationInfo"`
	IsVerified          bool                   `json:"isVerified"`
	Status              string                 `json:"status"`
	Coordinates         *Coordinates           `json:"coordinates,omitempty"`
	Distance            *float64               `json:"distance,omitempty"`
	VerificationDocURL  *string                `json:"verificationDocumentUrl,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

func FromChurchModel(m *model.ChurchModel) ChurchResponse {
	resp := ChurchResponse{
		ID:                 m.ChurchID,
		Name:               m.ChurchName,
		Address:            m.ChurchAddress,
		City:               m.ChurchCity,
		State:              m.ChurchState,
		Zip:                m.ChurchZip,
		Phone:              m.ChurchPhone,
		Description:        m.ChurchDescription,
		ImageURL:           m.ChurchImageURL,
		InteriorImageURL:   m.ChurchInteriorImageURL,
		Members:            m.ChurchMembers,
		Clergy:             []ClergyMemberResponse{},
		Services:           m.ChurchServices,
		ServiceSchedule:    m.ChurchServiceSchedule,
		Languages:          m.ChurchLanguages,
		Features:           m.ChurchFeatures,
		DonationInfo:       m.ChurchDonationInfo,
		IsVerified:         m.ChurchIsVerified,
		Status:             m.ChurchStatus,
		VerificationDocURL: m.ChurchVerificationDocURL,
		CreatedAt:          m.ChurchCreatedAt,
		UpdatedAt:          m.ChurchUpdatedAt,
	}
	if m.ChurchLatitude != nil && m.ChurchLongitude != nil {
		resp.Coordinates = &Coordinates{Lat: *m.ChurchLatitude, Lng: *m.ChurchLongitude}
	}
	if resp.Services == nil {
		resp.Services = []string{}
	}
	if resp.Languages == nil {
		resp.Languages = []string{}
	}
	if resp.ServiceSchedule == nil {
		resp.ServiceSchedule = []model.ServiceTime{}
	}
	return resp
}

func FromClergyModel(m *model.ClergyMemberModel) ClergyMemberResponse {
	return ClergyMemberResponse{
		ID:       m.ClergyID,
		Name:     m.ClergyName,
		Role:     m.ClergyRole,
		ImageURL: m.ClergyImageURL,
	}
}

// UpdateChurchRequest is the church-admin edit payload. Status, admin id and
// verification flags are deliberately absent; those move only through the
// approval workflow.
type UpdateChurchRequest struct {
	Name            *string              `json:"name" validate:"omitempty,min=3,max=150"`
	Address         *string              `json:"address" validate:"omitempty,max=200"`
	City            *string              `json:"city" validate:"omitempty,max=100"`
	State           *string              `json:"state" validate:"omitempty,max=30"`
	Zip             *string              `json:"zip" validate:"omitempty,max=10"`
	Phone           *string              `json:"phone" validate:"omitempty,max=30"`
	Description     *string              `json:"description"`
	Members         *int                 `json:"members" validate:"omitempty,min=0"`
	Services        []string             `json:"services"`
	ServiceSchedule []model.ServiceTime  `json:"serviceSchedule"`
	Languages       []string             `json:"languages"`
	Features        *model.Features      `json:"features"`
	DonationInfo    *model.DonationInfo  `json:"donationInfo"`
}

type AddClergyRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,max=100"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}
