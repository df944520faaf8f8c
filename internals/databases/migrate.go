package database

import (
	"log"

	adminModel "churchfinder_backend/internals/features/churches/admins/model"
	churchModel "churchfinder_backend/internals/features/churches/churches/model"
	eventModel "churchfinder_backend/internals/features/churches/events/model"
	followModel "churchfinder_backend/internals/features/churches/follows/model"
	registrationModel "churchfinder_backend/internals/features/churches/registration/model"
	authModel "churchfinder_backend/internals/features/users/auth/model"
	userModel "churchfinder_backend/internals/features/users/user/model"
)

// Migrate brings the schema up to date. Order matters: referenced tables
// before the ones holding foreign keys.
func Migrate() {
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&churchModel.ChurchModel{},
		&churchModel.ClergyMemberModel{},
		&eventModel.ChurchEventModel{},
		&adminModel.ChurchAdminModel{},
		&followModel.FollowModel{},
		&registrationModel.RegistrationModel{},
	)
	if err != nil {
		log.Fatalf("[ERROR] migration failed: %v", err)
	}
	log.Println("[INFO] schema migrated.")
}
