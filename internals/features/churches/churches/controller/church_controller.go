package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"churchfinder_backend/internals/constants"
	"churchfinder_backend/internals/features/churches/admins"
	"churchfinder_backend/internals/features/churches/churches/dto"
	"churchfinder_backend/internals/features/churches/churches/model"
	"churchfinder_backend/internals/features/churches/search"
	helper "churchfinder_backend/internals/helpers"
	"churchfinder_backend/internals/helpers/geocode"
	helperOSS "churchfinder_backend/internals/helpers/oss"
)

type ChurchController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Geocoder  geocode.Geocoder
	Images    *helperOSS.Service
	Authority *admins.Resolver
}

func NewChurchController(db *gorm.DB, validate *validator.Validate, geocoder geocode.Geocoder, images *helperOSS.Service, authority *admins.Resolver) *ChurchController {
	return &ChurchController{DB: db, Validate: validate, Geocoder: geocoder, Images: images, Authority: authority}
}

// Search lists approved churches through the filter engine. Filters arrive
// as query params: query, location, maxDistance, services (comma separated),
// and the visitor's lat/lng for distance ranking.
// GET /api/public/churches
func (ctl *ChurchController) Search(c *fiber.Ctx) error {
	var churches []model.ChurchModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("church_status = ?", model.StatusApproved).
		Order("church_name ASC").
		Find(&churches).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch churches")
	}

	out := make([]dto.ChurchResponse, 0, len(churches))
	for i := range churches {
		out = append(out, dto.FromChurchModel(&churches[i]))
	}

	loc := parseUserLocation(c)
	search.AttachDistances(out, loc)
	search.SortByDistance(out)

	filter := search.ChurchFilter{
		Query:    c.Query("query"),
		Location: c.Query("location"),
	}
	filter.MaxDistance = parseMaxDistance(c.Query("maxDistance"))
	if v := c.Query("services"); v != "" {
		filter.Services = strings.Split(v, ",")
	}
	out = search.FilterChurches(out, filter, loc)

	paging := helper.ResolvePaging(c, 20, 100)
	total := int64(len(out))
	start := paging.Offset
	if start > len(out) {
		start = len(out)
	}
	end := start + paging.PerPage
	if end > len(out) {
		end = len(out)
	}
	page := out[start:end]

	return helper.JsonList(c, "Churches fetched",
		page, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage, len(page)))
}

// parseMaxDistance accepts only the radius options the directory offers;
// anything else leaves the distance filter off, like an unchecked control.
func parseMaxDistance(v string) float64 {
	if v == "" {
		return 0
	}
	d, err := strconv.ParseFloat(v, 64)
	if err != nil || !constants.IsValidDistanceOption(d) {
		return 0
	}
	return d
}

func parseUserLocation(c *fiber.Ctx) *search.UserLocation {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" || lngStr == "" {
		return nil
	}
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lng, err2 := strconv.ParseFloat(lngStr, 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	return &search.UserLocation{Lat: lat, Lng: lng}
}

// GetByID returns one approved church with its clergy.
// GET /api/public/churches/:id
func (ctl *ChurchController) GetByID(c *fiber.Ctx) error {
	churchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid church id")
	}

	var church model.ChurchModel
	err = ctl.DB.WithContext(c.Context()).
		Where("church_id = ? AND church_status = ?", churchID, model.StatusApproved).
		First(&church).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Church not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch church")
	}

	resp := dto.FromChurchModel(&church)
	resp.Clergy = ctl.loadClergy(c, churchID)
	return helper.JsonOK(c, "Church fetched", resp)
}

func (ctl *ChurchController) loadClergy(c *fiber.Ctx, churchID uuid.UUID) []dto.ClergyMemberResponse {
	var clergy []model.ClergyMemberModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("clergy_church_id = ?", churchID).
		Order("clergy_created_at ASC").
		Find(&clergy).Error; err != nil {
		log.Printf("[ERROR] fetch clergy for church %s: %v", churchID, err)
		return []dto.ClergyMemberResponse{}
	}
	out := make([]dto.ClergyMemberResponse, 0, len(clergy))
	for i := range clergy {
		out = append(out, dto.FromClergyModel(&clergy[i]))
	}
	return out
}

// requireAdmin loads the church (any status) and checks the caller may
// manage it. Writes the error response itself; callers stop on non-nil.
func (ctl *ChurchController) requireAdmin(c *fiber.Ctx) (*model.ChurchModel, error) {
	churchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid church id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var church model.ChurchModel
	err = ctl.DB.WithContext(c.Context()).First(&church, "church_id = ?", churchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.JsonError(c, fiber.StatusNotFound, "Church not found")
	}
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch church")
	}

	ok, err := ctl.Authority.IsAdminOf(c.Context(), userID, church.ChurchID)
	if err != nil {
		log.Printf("[ERROR] authority check user %s church %s: %v", userID, church.ChurchID, err)
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify church access")
	}
	if !ok {
		return nil, helper.JsonError(c, fiber.StatusForbidden, "You do not manage this church")
	}
	return &church, nil
}

// Update edits a church the caller administers. Address changes re-run
// geocoding so the pin stays with the building. Status and ownership fields
// never pass through here.
// PUT /api/a/churches/:id
func (ctl *ChurchController) Update(c *fiber.Ctx) error {
	church, err := ctl.requireAdmin(c)
	if err != nil {
		return err
	}

	var req dto.UpdateChurchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	addressChanged := applyStringField(&church.ChurchAddress, req.Address) |
		applyStringField(&church.ChurchCity, req.City) |
		applyStringField(&church.ChurchState, req.State) |
		applyStringField(&church.ChurchZip, req.Zip)

	if req.Name != nil {
		church.ChurchName = *req.Name
	}
	if req.Phone != nil {
		church.ChurchPhone = *req.Phone
	}
	if req.Description != nil {
		church.ChurchDescription = *req.Description
	}
	if req.Members != nil {
		church.ChurchMembers = *req.Members
	}
	if req.Services != nil {
		church.ChurchServices = req.Services
	}
	if req.ServiceSchedule != nil {
		church.ChurchServiceSchedule = req.ServiceSchedule
	}
	if req.Languages != nil {
		church.ChurchLanguages = req.Languages
	}
	if req.Features != nil {
		church.ChurchFeatures = *req.Features
	}
	if req.DonationInfo != nil {
		church.ChurchDonationInfo = *req.DonationInfo
	}

	if addressChanged != 0 {
		address := geocode.ComposeAddress(church.ChurchAddress, church.ChurchCity, church.ChurchState, church.ChurchZip)
		located, err := ctl.Geocoder.Geocode(c.Context(), address)
		switch {
		case errors.Is(err, geocode.ErrAddressNotFound):
			return helper.JsonError(c, fiber.StatusUnprocessableEntity,
				"We couldn't find that address. Please check it and try again")
		case err != nil:
			return helper.JsonError(c, fiber.StatusBadGateway, "Address lookup is temporarily unavailable")
		}
		church.ChurchLatitude = &located.Lat
		church.ChurchLongitude = &located.Lng
	}

	if err := ctl.DB.WithContext(c.Context()).Save(church).Error; err != nil {
		log.Printf("[ERROR] update church %s: %v", church.ChurchID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update church")
	}
	return helper.JsonUpdated(c, "Church updated", dto.FromChurchModel(church))
}

// applyStringField copies when src is set and reports 1 if the value
// actually changed.
func applyStringField(dst *string, src *string) int {
	if src == nil || *src == *dst {
		return 0
	}
	*dst = *src
	return 1
}

// UploadImage replaces the main or interior photo.
// PATCH /api/a/churches/:id/image?kind=main|interior
func (ctl *ChurchController) UploadImage(c *fiber.Ctx) error {
	church, err := ctl.requireAdmin(c)
	if err != nil {
		return err
	}
	if ctl.Images == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Image storage is not configured")
	}

	kind := c.Query("kind", "main")
	if kind != "main" && kind != "interior" {
		return helper.JsonError(c, fiber.StatusBadRequest, "kind must be main or interior")
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

	url, err := ctl.Images.UploadChurchImage(church.ChurchID.String(), kind, fh.Filename, f)
	if err != nil {
		log.Printf("[ERROR] upload %s image for church %s: %v", kind, church.ChurchID, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to store image")
	}

	column := "church_image_url"
	if kind == "interior" {
		column = "church_interior_image_url"
	}
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.ChurchModel{}).
		Where("church_id = ?", church.ChurchID).
		Update(column, url).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save image reference")
	}
	return helper.JsonUpdated(c, "Church image updated", fiber.Map{"url": url, "kind": kind})
}

// UploadVerificationDocument stores proof-of-congregation paperwork for the
// reviewers.
// POST /api/a/churches/:id/verification-document
func (ctl *ChurchController) UploadVerificationDocument(c *fiber.Ctx) error {
	church, err := ctl.requireAdmin(c)
	if err != nil {
		return err
	}
	if ctl.Images == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Document storage is not configured")
	}

	fh, err := c.FormFile("document")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "A document file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Failed to read uploaded document")
	}
	defer f.Close()

	url, err := ctl.Images.UploadVerificationDocument(church.ChurchID.String(), fh.Filename, f)
	if err != nil {
		log.Printf("[ERROR] upload verification document for church %s: %v", church.ChurchID, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to store document")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.ChurchModel{}).
		Where("church_id = ?", church.ChurchID).
		Update("church_verification_doc_url", url).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save document reference")
	}
	return helper.JsonUpdated(c, "Verification document uploaded", fiber.Map{"url": url})
}

// AddClergy
// POST /api/a/churches/:id/clergy
func (ctl *ChurchController) AddClergy(c *fiber.Ctx) error {
	church, err := ctl.requireAdmin(c)
	if err != nil {
		return err
	}

	var req dto.AddClergyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	member := model.ClergyMemberModel{
		ClergyChurchID: church.ChurchID,
		ClergyName:     req.Name,
		ClergyRole:     req.Role,
		ClergyImageURL: req.ImageURL,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&member).Error; err != nil {
		log.Printf("[ERROR] add clergy to church %s: %v", church.ChurchID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add clergy member")
	}
	return helper.JsonCreated(c, "Clergy member added", dto.FromClergyModel(&member))
}

// RemoveClergy
// DELETE /api/a/churches/:id/clergy/:clergyId
func (ctl *ChurchController) RemoveClergy(c *fiber.Ctx) error {
	church, err := ctl.requireAdmin(c)
	if err != nil {
		return err
	}
	clergyID, err := uuid.Parse(c.Params("clergyId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid clergy id")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("clergy_id = ? AND clergy_church_id = ?", clergyID, church.ChurchID).
		Delete(&model.ClergyMemberModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove clergy member")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Clergy member not found")
	}
	return helper.JsonDeleted(c, "Clergy member removed", fiber.Map{"clergy_id": clergyID})
}
