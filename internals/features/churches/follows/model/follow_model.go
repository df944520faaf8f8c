package model

import (
	"time"

	"github.com/google/uuid"
)

// FollowModel is the user↔church follow join. The pair is the key, so a
// user can follow a church at most once.
type FollowModel struct {
	FollowUserID   uuid.UUID `gorm:"column:follow_user_id;type:uuid;primaryKey" json:"follow_user_id"`
	FollowChurchID uuid.UUID `gorm:"column:follow_church_id;type:uuid;primaryKey;index" json:"follow_church_id"`

	FollowCreatedAt time.Time `gorm:"column:follow_created_at;autoCreateTime" json:"follow_created_at"`
}

func (FollowModel) TableName() string {
	return "followed_churches"
}
