package handler

import (
	"mockmate/internal/domain"
	"mockmate/internal/dto"
	"mockmate/internal/middleware"
	"mockmate/internal/service"
	"mockmate/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AssistantHandler handles in-session assistant HTTP requests
type AssistantHandler struct {
	service   service.AssistantService
	validator *validation.Validator
}

// NewAssistantHandler creates a new AssistantHandler instance
func NewAssistantHandler(service service.AssistantService, validator *validation.Validator) *AssistantHandler {
	return &AssistantHandler{
		service:   service,
		validator: validator,
	}
}

// Ask godoc
// @Summary Ask the preparation assistant
// @Description Answers a free-form question with the session's recent conversation as context
// @Tags assistant
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AskAssistantRequest true "Question"
// @Success 200 {object} dto.AssistantResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /interviews/{id}/assistant [post]
// @Security BearerAuth
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	var req dto.AskAssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	reply, err := h.service.Ask(c.Context(), middleware.UserID(c), sessionID, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(dto.AssistantResponse{Reply: reply})
}
