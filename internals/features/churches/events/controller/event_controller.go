package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"churchfinder_backend/internals/constants"
	"churchfinder_backend/internals/features/churches/admins"
	churchModel "churchfinder_backend/internals/features/churches/churches/model"
	"churchfinder_backend/internals/features/churches/events/dto"
	"churchfinder_backend/internals/features/churches/events/model"
	"churchfinder_backend/internals/features/churches/search"
	helper "churchfinder_backend/internals/helpers"
	helperOSS "churchfinder_backend/internals/helpers/oss"
)

type EventController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Images    *helperOSS.Service
	Authority *admins.Resolver
}

func NewEventController(db *gorm.DB, validate *validator.Validate, images *helperOSS.Service, authority *admins.Resolver) *EventController {
	return &EventController{DB: db, Validate: validate, Images: images, Authority: authority}
}

// eventRow carries the denormalized church name alongside the event.
type eventRow struct {
	model.ChurchEventModel
	ChurchName string `gorm:"column:church_name"`
}

// approvedChurches joins the owning church and keeps only live, approved
// ones. The soft-delete scope guards the primary table alone, so the join
// must rule out deleted churches itself or their events would stay visible.
func approvedChurches(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN churches ON churches.church_id = events.event_church_id AND churches.church_deleted_at IS NULL").
		Where("churches.church_status = ?", churchModel.StatusApproved)
}

// List shows upcoming events across all approved churches, filtered by
// ?location=, ?types= (comma separated) and ?dateRange=
// (upcoming|thisWeek|thisMonth).
// GET /api/public/events
func (ctl *EventController) List(c *fiber.Ctx) error {
	now := time.Now()

	var rows []eventRow
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.ChurchEventModel{}).
		Select("events.*, churches.church_name").
		Scopes(approvedChurches).
		Where("events.event_date >= ?", now).
		Order("events.event_date ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	out := make([]dto.EventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromEventModel(&rows[i].ChurchEventModel, rows[i].ChurchName))
	}

	filter := search.EventFilter{
		Location:  c.Query("location"),
		DateRange: c.Query("dateRange"),
	}
	if v := c.Query("types"); v != "" {
		filter.Types = strings.Split(v, ",")
	}
	out = search.FilterEvents(out, filter, now)

	return helper.JsonOK(c, "Events fetched", out)
}

// ListByChurch shows a single approved church's upcoming events.
// GET /api/public/churches/:id/events
func (ctl *EventController) ListByChurch(c *fiber.Ctx) error {
	churchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid church id")
	}

	var church churchModel.ChurchModel
	err = ctl.DB.WithContext(c.Context()).
		Where("church_id = ? AND church_status = ?", churchID, churchModel.StatusApproved).
		First(&church).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Church not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch church")
	}

	var events []model.ChurchEventModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("event_church_id = ? AND event_date >= ?", churchID, time.Now()).
		Order("event_date ASC").
		Find(&events).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, dto.FromEventModel(&events[i], church.ChurchName))
	}
	return helper.JsonOK(c, "Events fetched", out)
}

// GetByID returns one event of an approved church.
// GET /api/public/events/:id
func (ctl *EventController) GetByID(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}

	var row eventRow
	err = ctl.DB.WithContext(c.Context()).
		Model(&model.ChurchEventModel{}).
		Select("events.*, churches.church_name").
		Scopes(approvedChurches).
		Where("events.event_id = ?", eventID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}
	return helper.JsonOK(c, "Event fetched", dto.FromEventModel(&row.ChurchEventModel, row.ChurchName))
}

// requireChurchAdmin checks the caller manages the church in :id.
func (ctl *EventController) requireChurchAdmin(c *fiber.Ctx) (uuid.UUID, error) {
	churchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid church id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, err
	}
	ok, err := ctl.Authority.IsAdminOf(c.Context(), userID, churchID)
	if err != nil {
		log.Printf("[ERROR] authority check user %s church %s: %v", userID, churchID, err)
		return uuid.Nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify church access")
	}
	if !ok {
		return uuid.Nil, helper.JsonError(c, fiber.StatusForbidden, "You do not manage this church")
	}
	return churchID, nil
}

// Create adds an event to a church the caller administers.
// POST /api/a/churches/:id/events
func (ctl *EventController) Create(c *fiber.Ctx) error {
	churchID, err := ctl.requireChurchAdmin(c)
	if err != nil {
		return err
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !constants.IsValidEventType(req.Type) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Unknown event type")
	}

	event := model.ChurchEventModel{
		EventChurchID:    churchID,
		EventTitle:       req.Title,
		EventType:        req.Type,
		EventDate:        req.Date,
		EventLocation:    req.Location,
		EventDescription: req.Description,
		EventImageURL:    req.ImageURL,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&event).Error; err != nil {
		log.Printf("[ERROR] create event for church %s: %v", churchID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create event")
	}
	return helper.JsonCreated(c, "Event created", dto.FromEventModel(&event, ""))
}

// loadOwnedEvent fetches an event and checks the caller manages its church.
func (ctl *EventController) loadOwnedEvent(c *fiber.Ctx) (*model.ChurchEventModel, error) {
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var event model.ChurchEventModel
	err = ctl.DB.WithContext(c.Context()).First(&event, "event_id = ?", eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}

	ok, err := ctl.Authority.IsAdminOf(c.Context(), userID, event.EventChurchID)
	if err != nil {
		log.Printf("[ERROR] authority check user %s church %s: %v", userID, event.EventChurchID, err)
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify church access")
	}
	if !ok {
		return nil, helper.JsonError(c, fiber.StatusForbidden, "You do not manage this church")
	}
	return &event, nil
}

// Update
// PUT /api/a/events/:eventId
func (ctl *EventController) Update(c *fiber.Ctx) error {
	event, err := ctl.loadOwnedEvent(c)
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.Type != nil && !constants.IsValidEventType(*req.Type) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Unknown event type")
	}

	if req.Title != nil {
		event.EventTitle = *req.Title
	}
	if req.Type != nil {
		event.EventType = *req.Type
	}
	if req.Date != nil {
		event.EventDate = *req.Date
	}
	if req.Location != nil {
		event.EventLocation = *req.Location
	}
	if req.Description != nil {
		event.EventDescription = *req.Description
	}
	if req.ImageURL != nil {
		event.EventImageURL = *req.ImageURL
	}

	if err := ctl.DB.WithContext(c.Context()).Save(event).Error; err != nil {
		log.Printf("[ERROR] update event %s: %v", event.EventID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}
	return helper.JsonUpdated(c, "Event updated", dto.FromEventModel(event, ""))
}

// Delete
// DELETE /api/a/events/:eventId
func (ctl *EventController) Delete(c *fiber.Ctx) error {
	event, err := ctl.loadOwnedEvent(c)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.Context()).
		Delete(&model.ChurchEventModel{}, "event_id = ?", event.EventID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete event")
	}
	return helper.JsonDeleted(c, "Event deleted", fiber.Map{"event_id": event.EventID})
}

// UploadImage attaches a flyer/photo to the event.
// PATCH /api/a/events/:eventId/image
func (ctl *EventController) UploadImage(c *fiber.Ctx) error {
	event, err := ctl.loadOwnedEvent(c)
	if err != nil {
		return err
	}
	if ctl.Images == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Image storage is not configured")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "An image file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Failed to read uploaded image")
	}
	defer f.Close()

	url, err := ctl.Images.UploadEventImage(event.EventID.String(), fh.Filename, f)
	if err != nil {
		log.Printf("[ERROR] upload image for event %s: %v", event.EventID, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to store image")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.ChurchEventModel{}).
		Where("event_id = ?", event.EventID).
		Update("event_image_url", url).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save image reference")
	}
	return helper.JsonUpdated(c, "Event image updated", fiber.Map{"url": url})
}
