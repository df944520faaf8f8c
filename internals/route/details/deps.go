package details

import (
	"log"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"churchfinder_backend/internals/configs"
	assistantService "churchfinder_backend/internals/features/assistant/service"
	"churchfinder_backend/internals/features/churches/admins"
	"churchfinder_backend/internals/features/churches/approval"
	"churchfinder_backend/internals/features/churches/registration"
	"churchfinder_backend/internals/helpers/geocode"
	helperOSS "churchfinder_backend/internals/helpers/oss"
)

// Deps bundles everything the route groups share: the database, the
// validator, the gateway clients and the workflow services built on them.
type Deps struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Geocoder  geocode.Geocoder
	Images    *helperOSS.Service
	Assistant assistantService.Assistant
	Authority *admins.Resolver

	Registration *registration.Service
	Approval     *approval.Service
}

// BuildDeps wires the gateway clients from the environment. Image storage is
// optional in local development; endpoints that need it answer 503 until it
// is configured.
func BuildDeps(db *gorm.DB) *Deps {
	images, err := helperOSS.NewServiceFromEnv()
	if err != nil {
		log.Printf("[INFO] image storage disabled: %v", err)
		images = nil
	}

	geocoder := geocode.NewClient(configs.NominatimBaseURL)

	var imageStore registration.ImageStore
	if images != nil {
		imageStore = images
	}

	return &Deps{
		DB:           db,
		Validate:     validator.New(),
		Geocoder:     geocoder,
		Images:       images,
		Assistant:    assistantService.NewGeminiClient(configs.GeminiAPIKey),
		Authority:    admins.NewResolver(admins.NewGormLinkage(db)),
		Registration: registration.NewService(registration.NewGormStore(db), geocoder, imageStore),
		Approval:     approval.NewService(approval.NewGormStore(db)),
	}
}
