package registration

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	churchDTO "churchfinder_backend/internals/features/churches/churches/dto"
	"churchfinder_backend/internals/features/churches/registration/model"
	helper "churchfinder_backend/internals/helpers"
	"churchfinder_backend/internals/helpers/geocode"
)

type Controller struct {
	Service  *Service
	Validate *validator.Validate
}

func NewController(service *Service, validate *validator.Validate) *Controller {
	return &Controller{Service: service, Validate: validate}
}

// GetDraft
// GET /api/u/registration
func (ctl *Controller) GetDraft(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	draft, err := ctl.Service.GetDraft(c.Context(), userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load registration")
	}
	return helper.JsonOK(c, "Registration draft fetched", draft)
}

// SaveForm
// PUT /api/u/registration
func (ctl *Controller) SaveForm(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var form model.FormData
	if err := c.BodyParser(&form); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	draft, err := ctl.Service.SaveForm(c.Context(), userID, form)
	if err != nil {
		return ctl.writeError(c, err)
	}
	return helper.JsonUpdated(c, "Registration draft saved", draft)
}

// Advance
// POST /api/u/registration/advance
func (ctl *Controller) Advance(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	draft, err := ctl.Service.Advance(c.Context(), userID)
	if err != nil {
		return ctl.writeError(c, err)
	}
	return helper.JsonUpdated(c, "Moved to next step", draft)
}

// Back
// POST /api/u/registration/back
func (ctl *Controller) Back(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	draft, err := ctl.Service.Back(c.Context(), userID)
	if err != nil {
		return ctl.writeError(c, err)
	}
	return helper.JsonUpdated(c, "Moved to previous step", draft)
}

// Submit finalizes the registration. Multipart form; the form fields are
// read from the saved draft, an optional "image" file may accompany it.
// POST /api/u/registration/submit
func (ctl *Controller) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var image *UploadedImage
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Failed to read uploaded image")
		}
		defer f.Close()
		image = &UploadedImage{Filename: fh.Filename, Reader: f}
	}

	church, err := ctl.Service.Submit(c.Context(), userID, image)
	if err != nil {
		return ctl.writeError(c, err)
	}
	return helper.JsonCreated(c, "Church registration submitted", churchDTO.FromChurchModel(church))
}

func (ctl *Controller) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrPhoneRequired),
		errors.Is(err, ErrChurchInfoIncomplete),
		errors.Is(err, ErrScheduleRequired),
		errors.Is(err, ErrLanguageRequired):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrAlreadySubmitted), errors.Is(err, ErrAtFirstStep):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, geocode.ErrAddressNotFound):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity,
			"We couldn't find that address. Please check it and try again")
	case errors.Is(err, geocode.ErrServiceUnavailable):
		return helper.JsonError(c, fiber.StatusBadGateway, "Address lookup is temporarily unavailable")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process registration")
	}
}
