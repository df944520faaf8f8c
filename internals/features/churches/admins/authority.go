// Package admins resolves which users administer which churches. Ownership
// lives in two places for historical reasons: the church_admins linkage
// table and the older single church_admin_id column on the church row.
// Authority checks reconcile both.
package admins

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	adminModel "churchfinder_backend/internals/features/churches/admins/model"
	churchModel "churchfinder_backend/internals/features/churches/churches/model"
)

// Linkage answers the two ownership questions the resolver needs.
type Linkage interface {
	HasLink(ctx context.Context, userID, churchID uuid.UUID) (bool, error)
	LegacyAdminID(ctx context.Context, churchID uuid.UUID) (*uuid.UUID, error)
}

// Resolver decides whether a user may manage a church.
type Resolver struct {
	linkage Linkage
}

func NewResolver(linkage Linkage) *Resolver {
	return &Resolver{linkage: linkage}
}

// IsAdminOf reports whether the user administers the church. The linkage
// table is checked first; the legacy column is consulted only when the
// linkage lookup finds nothing or fails, so churches registered before the
// linkage table existed stay manageable.
func (r *Resolver) IsAdminOf(ctx context.Context, userID, churchID uuid.UUID) (bool, error) {
	linked, err := r.linkage.HasLink(ctx, userID, churchID)
	if err == nil && linked {
		return true, nil
	}

	legacyID, legacyErr := r.linkage.LegacyAdminID(ctx, churchID)
	if legacyErr != nil {
		if err != nil {
			return false, err
		}
		return false, legacyErr
	}
	return legacyID != nil && *legacyID == userID, nil
}

// GormLinkage reads ownership from the shared database.
type GormLinkage struct {
	DB *gorm.DB
}

func NewGormLinkage(db *gorm.DB) *GormLinkage {
	return &GormLinkage{DB: db}
}

func (l *GormLinkage) HasLink(ctx context.Context, userID, churchID uuid.UUID) (bool, error) {
	var count int64
	err := l.DB.WithContext(ctx).
		Model(&adminModel.ChurchAdminModel{}).
		Where("church_admin_user_id = ? AND church_admin_church_id = ? AND church_admin_is_active = TRUE",
			userID, churchID).
		Count(&count).Error
	return count > 0, err
}

func (l *GormLinkage) LegacyAdminID(ctx context.Context, churchID uuid.UUID) (*uuid.UUID, error) {
	var church churchModel.ChurchModel
	err := l.DB.WithContext(ctx).
		Select("church_admin_id").
		Where("church_id = ?", churchID).
		First(&church).Error
	if err != nil {
		return nil, err
	}
	return church.ChurchAdminID, nil
}
