package dto

import (
	"time"

	"github.com/google/uuid"

	"churchfinder_backend/internals/features/churches/events/model"
)

type EventResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Date        time.Time  `json:"date"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	ChurchID    *uuid.UUID `json:"churchId,omitempty"`
	ChurchName  string     `json:"churchName,omitempty"` // denormalized for aggregate views
}

func FromEventModel(m *model.ChurchEventModel, churchName string) EventResponse {
	churchID := m.EventChurchID
	return EventResponse{
		ID:          m.EventID,
		Title:       m.EventTitle,
		Type:        m.EventType,
		Date:        m.EventDate,
		Location:    m.EventLocation,
		Description: m.EventDescription,
		ImageURL:    m.EventImageURL,
		ChurchID:    &churchID,
		ChurchName:  churchName,
	}
}

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,max=150"`
	Type        string    `json:"type" validate:"required,max=50"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required,max=200"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl" validate:"omitempty,url"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=150"`
	Type        *string    `json:"type" validate:"omitempty,max=50"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,url"`
}
