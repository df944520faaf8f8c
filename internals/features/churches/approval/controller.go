package approval

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	churchDTO "churchfinder_backend/internals/features/churches/churches/dto"
	churchModel "churchfinder_backend/internals/features/churches/churches/model"
	helper "churchfinder_backend/internals/helpers"
)

// Controller exposes the super-admin review surface: pending queue, full
// listing regardless of status, approve/reject decisions, and removal.
type Controller struct {
	DB      *gorm.DB
	Service *Service
}

func NewController(db *gorm.DB, service *Service) *Controller {
	return &Controller{DB: db, Service: service}
}

// ListPending
// GET /api/o/churches/pending
func (ctl *Controller) ListPending(c *fiber.Ctx) error {
	return ctl.list(c, churchModel.StatusPending)
}

// ListAll returns every church regardless of status, optionally narrowed by
// ?status=.
// GET /api/o/churches
func (ctl *Controller) ListAll(c *fiber.Ctx) error {
	return ctl.list(c, c.Query("status"))
}

func (ctl *Controller) list(c *fiber.Ctx, status string) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&churchModel.ChurchModel{})
	if status != "" {
		q = q.Where("church_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count churches")
	}

	var churches []churchModel.ChurchModel
	if err := q.Order("church_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&churches).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch churches")
	}

	out := make([]churchDTO.ChurchResponse, 0, len(churches))
	for i := range churches {
		out = append(out, churchDTO.FromChurchModel(&churches[i]))
	}
	return helper.JsonList(c, "Churches fetched",
		out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage, len(out)))
}

// Approve
// POST /api/o/churches/:id/approve
func (ctl *Controller) Approve(c *fiber.Ctx) error {
	return ctl.decide(c, churchModel.StatusApproved)
}

// Reject
// POST /api/o/churches/:id/reject
func (ctl *Controller) Reject(c *fiber.Ctx) error {
	return ctl.decide(c, churchModel.StatusRejected)
}

func (ctl *Controller) decide(c *fiber.Ctx, target string) error {
	churchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid church id")
	}

	if err := ctl.Service.Decide(c.Context(), churchID, target); err != nil {
		switch {
		case errors.Is(err, ErrChurchNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Church not found")
		case errors.Is(err, ErrNotPending):
			return helper.JsonError(c, fiber.StatusConflict, "Church has already been reviewed")
		default:
			log.Printf("[ERROR] review church %s as %s: %v", churchID, target, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update church status")
		}
	}

	var church churchModel.ChurchModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&church, "church_id = ?", churchID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch church")
	}
	return helper.JsonUpdated(c, "Church "+target, churchDTO.FromChurchModel(&church))
}

// Delete soft-deletes a church. Its events stay in place but stop surfacing
// anywhere, because every public query joins on live approved churches; the
// cascading FK clears them only on a hard purge.
// DELETE /api/o/churches/:id
func (ctl *Controller) Delete(c *fiber.Ctx) error {
	churchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid church id")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("church_id = ?", churchID).
		Delete(&churchModel.ChurchModel{})
	if res.Error != nil {
		log.Printf("[ERROR] delete church %s: %v", churchID, res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete church")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Church not found")
	}
	return helper.JsonDeleted(c, "Church deleted", fiber.Map{"church_id": churchID})
}
