// Package approval implements the super-admin review of newly registered
// churches: pending drafts become approved or rejected, exactly once.
package approval

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	churchModel "churchfinder_backend/internals/features/churches/churches/model"
)

var (
	ErrChurchNotFound = errors.New("church not found")
	ErrNotPending     = errors.New("church is not pending review")
	ErrInvalidTarget  = errors.New("decision must be approved or rejected")
)

// Store applies a review decision. Decide must only touch rows still in
// pending and report whether one was changed.
type Store interface {
	Decide(ctx context.Context, churchID uuid.UUID, status string, verified bool) (changed bool, err error)
	Exists(ctx context.Context, churchID uuid.UUID) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Decide moves a pending church to the target status. Approval also marks
// the church verified in the same write; rejection leaves the verified flag
// untouched. Churches already decided stay as they are.
func (s *Service) Decide(ctx context.Context, churchID uuid.UUID, target string) error {
	if target != churchModel.StatusApproved && target != churchModel.StatusRejected {
		return ErrInvalidTarget
	}
	verified := target == churchModel.StatusApproved

	changed, err := s.store.Decide(ctx, churchID, target, verified)
	if err != nil {
		return err
	}
	if changed {
		return nil
	}
	exists, err := s.store.Exists(ctx, churchID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrChurchNotFound
	}
	return ErrNotPending
}

// GormStore runs decisions against the churches table.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Decide is a single guarded UPDATE so status and the verified flag change
// together, and only from pending.
func (s *GormStore) Decide(ctx context.Context, churchID uuid.UUID, status string, verified bool) (bool, error) {
	updates := map[string]interface{}{"church_status": status}
	if verified {
		updates["church_is_verified"] = true
	}
	res := s.DB.WithContext(ctx).
		Model(&churchModel.ChurchModel{}).
		Where("church_id = ? AND church_status = ?", churchID, churchModel.StatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) Exists(ctx context.Context, churchID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&churchModel.ChurchModel{}).
		Where("church_id = ?", churchID).
		Count(&count).Error
	return count > 0, err
}
