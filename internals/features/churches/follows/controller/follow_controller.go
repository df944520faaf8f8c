package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	churchDTO "churchfinder_backend/internals/features/churches/churches/dto"
	churchModel "churchfinder_backend/internals/features/churches/churches/model"
	"churchfinder_backend/internals/features/churches/follows/model"
	helper "churchfinder_backend/internals/helpers"
)

type FollowController struct {
	DB *gorm.DB
}

func NewFollowController(db *gorm.DB) *FollowController {
	return &FollowController{DB: db}
}

// Follow adds the church to the caller's followed set. Following a church
// twice is a no-op, not an error.
// POST /api/u/churches/:id/follow
func (ctl *FollowController) Follow(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	churchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid church id")
	}

	var exists int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&churchModel.ChurchModel{}).
		Where("church_id = ? AND church_status = ?", churchID, churchModel.StatusApproved).
		Count(&exists).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up church")
	}
	if exists == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Church not found")
	}

	follow := model.FollowModel{FollowUserID: userID, FollowChurchID: churchID}
	if err := ctl.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow).Error; err != nil {
		log.Printf("[ERROR] follow church %s by user %s: %v", churchID, userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to follow church")
	}
	return helper.JsonCreated(c, "Church followed", fiber.Map{"church_id": churchID})
}

// Unfollow removes the church from the caller's followed set. Unfollowing
// something never followed succeeds quietly.
// DELETE /api/u/churches/:id/follow
func (ctl *FollowController) Unfollow(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	churchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid church id")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("follow_user_id = ? AND follow_church_id = ?", userID, churchID).
		Delete(&model.FollowModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to unfollow church")
	}
	return helper.JsonDeleted(c, "Church unfollowed", fiber.Map{"church_id": churchID})
}

// IsFollowing
// GET /api/u/churches/:id/follow
func (ctl *FollowController) IsFollowing(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	churchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid church id")
	}

	var count int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.FollowModel{}).
		Where("follow_user_id = ? AND follow_church_id = ?", userID, churchID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check follow status")
	}
	return helper.JsonOK(c, "Follow status fetched", fiber.Map{
		"church_id":    churchID,
		"is_following": count > 0,
	})
}

// GetFollowed lists the caller's followed churches. Only approved churches
// show up; follows of since-rejected or deleted churches fall away here.
// GET /api/u/churches/followed
func (ctl *FollowController) GetFollowed(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var churches []churchModel.ChurchModel
	if err := ctl.DB.WithContext(c.Context()).
		Joins("JOIN followed_churches f ON f.follow_church_id = churches.church_id").
		Where("f.follow_user_id = ? AND churches.church_status = ?", userID, churchModel.StatusApproved).
		Order("f.follow_created_at DESC").
		Find(&churches).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch followed churches")
	}

	out := make([]churchDTO.ChurchResponse, 0, len(churches))
	for i := range churches {
		out = append(out, churchDTO.FromChurchModel(&churches[i]))
	}
	return helper.JsonOK(c, "Followed churches fetched", out)
}
