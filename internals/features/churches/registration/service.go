package registration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"churchfinder_backend/internals/constants"
	churchModel "churchfinder_backend/internals/features/churches/churches/model"
	"churchfinder_backend/internals/features/churches/registration/model"
	"churchfinder_backend/internals/helpers/geocode"
)

// Validation-gate errors. All are caught before any gateway call.
var (
	ErrPhoneRequired        = errors.New("phone number is required")
	ErrChurchInfoIncomplete = errors.New("name, address, city, state and zip are required")
	ErrScheduleRequired     = errors.New("at least one service schedule entry with a day and start time is required")
	ErrLanguageRequired     = errors.New("at least one language is required")
	ErrAlreadySubmitted     = errors.New("registration has already been submitted")
	ErrAtFirstStep          = errors.New("already on the first step")
)

// Store is the persistence surface the workflow needs.
type Store interface {
	GetDraft(ctx context.Context, userID uuid.UUID) (*model.RegistrationModel, error)
	SaveDraft(ctx context.Context, draft *model.RegistrationModel) error
	CreateChurch(ctx context.Context, church *churchModel.ChurchModel) error
	SetChurchImageURL(ctx context.Context, churchID uuid.UUID, url string) error
	LinkAdmin(ctx context.Context, userID, churchID uuid.UUID) error
	ElevateRole(ctx context.Context, userID uuid.UUID, role string) error
}

// ImageStore is the blob surface the workflow needs: park an image under a
// temporary key before the church exists, then re-key it afterwards.
type ImageStore interface {
	UploadRegistrationImage(draftID, filename string, r io.Reader) (string, error)
	RekeyChurchImage(tempKey, churchID string) (string, error)
}

// UploadedImage is an optional image attached to the submission request.
type UploadedImage struct {
	Filename string
	Reader   io.Reader
}

// Service runs the registration wizard: a per-user draft that advances
// through validation gates and ends in a pending church record.
type Service struct {
	store    Store
	geocoder geocode.Geocoder
	images   ImageStore
	logf     func(format string, args ...any)
}

func NewService(store Store, geocoder geocode.Geocoder, images ImageStore) *Service {
	return &Service{store: store, geocoder: geocoder, images: images, logf: log.Printf}
}

// GetDraft returns the user's draft, creating an empty one on first touch.
func (s *Service) GetDraft(ctx context.Context, userID uuid.UUID) (*model.RegistrationModel, error) {
	draft, err := s.store.GetDraft(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return draft, nil
	}
	draft = &model.RegistrationModel{
		RegistrationUserID: userID,
		RegistrationStep:   model.StepAdminInfo,
		RegistrationForm:   datatypes.NewJSONType(model.FormData{}),
	}
	if err := s.store.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SaveForm merges the given form data into the draft without moving between
// steps, so going back never discards entered data.
func (s *Service) SaveForm(ctx context.Context, userID uuid.UUID, form model.FormData) (*model.RegistrationModel, error) {
	draft, err := s.GetDraft(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft.RegistrationStep == model.StepSubmitted {
		return nil, ErrAlreadySubmitted
	}
	draft.RegistrationForm = datatypes.NewJSONType(form)
	if err := s.store.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Advance moves the draft to the next step after its gate passes.
func (s *Service) Advance(ctx context.Context, userID uuid.UUID) (*model.RegistrationModel, error) {
	draft, err := s.GetDraft(ctx, userID)
	if err != nil {
		return nil, err
	}
	form := draft.RegistrationForm.Data()

	switch draft.RegistrationStep {
	case model.StepAdminInfo:
		if err := gateAdminInfo(form); err != nil {
			return nil, err
		}
		draft.RegistrationStep = model.StepChurchInfo
	case model.StepChurchInfo:
		if err := gateChurchInfo(form); err != nil {
			return nil, err
		}
		draft.RegistrationStep = model.StepChurchDetails
	case model.StepChurchDetails:
		return nil, errors.New("the final step is completed by submitting")
	default:
		return nil, ErrAlreadySubmitted
	}

	if err := s.store.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Back moves the draft one step backwards, keeping all entered data.
func (s *Service) Back(ctx context.Context, userID uuid.UUID) (*model.RegistrationModel, error) {
	draft, err := s.GetDraft(ctx, userID)
	if err != nil {
		return nil, err
	}
	switch draft.RegistrationStep {
	case model.StepChurchInfo:
		draft.RegistrationStep = model.StepAdminInfo
	case model.StepChurchDetails:
		draft.RegistrationStep = model.StepChurchInfo
	case model.StepSubmitted:
		return nil, ErrAlreadySubmitted
	default:
		return nil, ErrAtFirstStep
	}
	if err := s.store.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Submit runs the terminal side-effect sequence. Any failure before the
// church record exists leaves the draft where it was so the user can correct
// and retry; a failure re-keying the image after creation is only logged.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, image *UploadedImage) (*churchModel.ChurchModel, error) {
	draft, err := s.GetDraft(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft.RegistrationStep == model.StepSubmitted {
		return nil, ErrAlreadySubmitted
	}
	form := draft.RegistrationForm.Data()

	// Every gate re-runs here, before any gateway call.
	if err := gateAdminInfo(form); err != nil {
		return nil, err
	}
	if err := gateChurchInfo(form); err != nil {
		return nil, err
	}
	if err := gateChurchDetails(form); err != nil {
		return nil, err
	}

	address := geocode.ComposeAddress(form.Address, form.City, form.State, form.Zip)
	located, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if image != nil && image.Reader != nil {
		if s.images == nil {
			return nil, errors.New("image storage is not configured")
		}
		key, err := s.images.UploadRegistrationImage(draft.RegistrationID.String(), image.Filename, image.Reader)
		if err != nil {
			return nil, fmt.Errorf("upload church image: %w", err)
		}
		draft.RegistrationTempImageKey = &key
		if err := s.store.SaveDraft(ctx, draft); err != nil {
			return nil, err
		}
	}

	schedule := BuildServiceTimes(form.ServiceSchedule)
	lat, lng := located.Lat, located.Lng

	church := &churchModel.ChurchModel{
		ChurchName:            form.Name,
		ChurchAddress:         form.Address,
		ChurchCity:            form.City,
		ChurchState:           form.State,
		ChurchZip:             form.Zip,
		ChurchPhone:           form.Phone,
		ChurchDescription:     form.Description,
		ChurchMembers:         0,
		ChurchServices:        form.Services,
		ChurchServiceSchedule: schedule,
		ChurchLanguages:       form.Languages,
		ChurchFeatures:        form.Features,
		ChurchLatitude:        &lat,
		ChurchLongitude:       &lng,
		ChurchIsVerified:      false,
		ChurchStatus:          churchModel.StatusPending,
		ChurchAdminID:         &userID,
	}
	if err := s.store.CreateChurch(ctx, church); err != nil {
		return nil, err
	}

	if draft.RegistrationTempImageKey != nil {
		// A temp key can survive from an earlier attempt that uploaded the
		// image and then failed a later step. Storage may have been
		// deconfigured since, so this path cannot assume s.images is set.
		if s.images == nil {
			s.logf("[ERROR] re-key registration image for church %s: image storage is not configured", church.ChurchID)
		} else if url, err := s.images.RekeyChurchImage(*draft.RegistrationTempImageKey, church.ChurchID.String()); err != nil {
			// The church already exists; a lost image is recoverable by the
			// admin re-uploading from the edit page.
			s.logf("[ERROR] re-key registration image for church %s: %v", church.ChurchID, err)
		} else if err := s.store.SetChurchImageURL(ctx, church.ChurchID, url); err != nil {
			s.logf("[ERROR] set image url for church %s: %v", church.ChurchID, err)
		} else {
			church.ChurchImageURL = url
		}
	}

	if err := s.store.LinkAdmin(ctx, userID, church.ChurchID); err != nil {
		return nil, fmt.Errorf("link church admin: %w", err)
	}
	if err := s.store.ElevateRole(ctx, userID, constants.RoleChurchAdmin); err != nil {
		return nil, fmt.Errorf("elevate user role: %w", err)
	}

	draft.RegistrationStep = model.StepSubmitted
	draft.RegistrationChurchID = &church.ChurchID
	draft.RegistrationTempImageKey = nil
	if err := s.store.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return church, nil
}

func gateAdminInfo(form model.FormData) error {
	if strings.TrimSpace(form.Phone) == "" {
		return ErrPhoneRequired
	}
	return nil
}

func gateChurchInfo(form model.FormData) error {
	for _, v := range []string{form.Name, form.Address, form.City, form.State, form.Zip} {
		if strings.TrimSpace(v) == "" {
			return ErrChurchInfoIncomplete
		}
	}
	return nil
}

func gateChurchDetails(form model.FormData) error {
	ok := false
	for _, e := range form.ServiceSchedule {
		if e.Day != "" && e.StartTime != "" {
			ok = true
			break
		}
	}
	if !ok {
		return ErrScheduleRequired
	}
	if len(form.Languages) == 0 {
		return ErrLanguageRequired
	}
	return nil
}
