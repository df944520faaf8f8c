package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	churchDTO "churchfinder_backend/internals/features/churches/churches/dto"
	churchModel "churchfinder_backend/internals/features/churches/churches/model"
	helper "churchfinder_backend/internals/helpers"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetMyChurches lists every church the caller administers, through either
// ownership path, any status. This backs the admin dashboard.
// GET /api/a/churches
func (ctl *AdminController) GetMyChurches(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var churches []churchModel.ChurchModel
	if err := ctl.DB.WithContext(c.Context()).
		Distinct("churches.*").
		Joins("LEFT JOIN church_admins ca ON ca.church_admin_church_id = churches.church_id AND ca.church_admin_is_active = TRUE").
		Where("ca.church_admin_user_id = ? OR churches.church_admin_id = ?", userID, userID).
		Order("churches.church_created_at DESC").
		Find(&churches).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch your churches")
	}

	out := make([]churchDTO.ChurchResponse, 0, len(churches))
	for i := range churches {
		out = append(out, churchDTO.FromChurchModel(&churches[i]))
	}
	return helper.JsonOK(c, "Your churches fetched", out)
}
