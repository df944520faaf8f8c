package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"churchfinder_backend/internals/features/assistant/service"
	helper "churchfinder_backend/internals/helpers"
)

type AssistantController struct {
	Assistant service.Assistant
}

func NewAssistantController(assistant service.Assistant) *AssistantController {
	return &AssistantController{Assistant: assistant}
}

type askRequest struct {
	Question string `json:"question"`
}

// Ask answers a faith question. Upstream trouble degrades to a canned
// apology rather than an error status, so the chat view stays usable.
// POST /api/public/assistant/ask
func (ctl *AssistantController) Ask(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	answer, err := ctl.Assistant.Ask(c.Context(), req.Question)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuestion) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "A question is required")
		}
		log.Printf("[ERROR] assistant ask: %v", err)
		answer = service.FallbackAnswer
	}
	return helper.JsonOK(c, "Answer generated", fiber.Map{"answer": answer})
}
