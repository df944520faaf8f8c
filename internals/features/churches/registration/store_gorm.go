package registration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"churchfinder_backend/internals/constants"
	adminModel "churchfinder_backend/internals/features/churches/admins/model"
	churchModel "churchfinder_backend/internals/features/churches/churches/model"
	"churchfinder_backend/internals/features/churches/registration/model"
)

// GormStore backs the registration workflow with the shared database.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetDraft(ctx context.Context, userID uuid.UUID) (*model.RegistrationModel, error) {
	var draft model.RegistrationModel
	err := s.DB.WithContext(ctx).
		Where("registration_user_id = ?", userID).
		First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *GormStore) SaveDraft(ctx context.Context, draft *model.RegistrationModel) error {
	return s.DB.WithContext(ctx).Save(draft).Error
}

func (s *GormStore) CreateChurch(ctx context.Context, church *churchModel.ChurchModel) error {
	return s.DB.WithContext(ctx).Create(church).Error
}

func (s *GormStore) SetChurchImageURL(ctx context.Context, churchID uuid.UUID, url string) error {
	return s.DB.WithContext(ctx).
		Model(&churchModel.ChurchModel{}).
		Where("church_id = ?", churchID).
		Update("church_image_url", url).Error
}

// LinkAdmin creates the admin linkage row; a pre-existing pair is fine.
func (s *GormStore) LinkAdmin(ctx context.Context, userID, churchID uuid.UUID) error {
	link := adminModel.ChurchAdminModel{
		ChurchAdminChurchID: churchID,
		ChurchAdminUserID:   userID,
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

// ElevateRole promotes a plain user to the given role. Users already holding
// a higher role are left alone, so re-submission never demotes anyone.
func (s *GormStore) ElevateRole(ctx context.Context, userID uuid.UUID, role string) error {
	return s.DB.WithContext(ctx).
		Table("users").
		Where("id = ? AND role = ?", userID, constants.RoleUser).
		Update("role", role).Error
}
