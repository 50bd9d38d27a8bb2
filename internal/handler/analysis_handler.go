package handler

import (
	"context"

	"mockmate/internal/domain"
	"mockmate/internal/dto"
	"mockmate/internal/middleware"
	"mockmate/internal/polling"
	"mockmate/internal/service"
	"mockmate/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AnalysisHandler handles document analysis HTTP requests
type AnalysisHandler struct {
	service   service.AnalysisService
	validator *validation.Validator
	waiter    *polling.Waiter
}

// NewAnalysisHandler creates a new AnalysisHandler instance
func NewAnalysisHandler(service service.AnalysisService, validator *validation.Validator, waiter *polling.Waiter) *AnalysisHandler {
	return &AnalysisHandler{
		service:   service,
		validator: validator,
		waiter:    waiter,
	}
}

// Upload godoc
// @Summary Upload a document for analysis
// @Description Creates a pending analysis record and schedules processing; poll the record for the result
// @Tags analyses
// @Accept json
// @Produce json
// @Param request body dto.UploadAnalysisRequest true "Document"
// @Success 202 {object} dto.AnalysisResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Router /analyses [post]
// @Security BearerAuth
func (h *AnalysisHandler) Upload(c *fiber.Ctx) error {
	var req dto.UploadAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateUploadAnalysisRequest(&req); len(errs) > 0 {
		return errs
	}

	record, err := h.service.Upload(c.Context(), req.ToDomain(middleware.UserID(c)))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.NewAnalysisResponse(record))
}

// Get godoc
// @Summary Get an analysis record
// @Description With wait=true the request blocks until the record reaches a terminal state or the polling budget runs out
// @Tags analyses
// @Produce json
// @Param id path string true "Record ID"
// @Param wait query bool false "Block until processing finishes"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /analyses/{id} [get]
// @Security BearerAuth
func (h *AnalysisHandler) Get(c *fiber.Ctx) error {
	recordID := c.Params("id")
	if !validation.IsValidULID(recordID) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", recordID)}
	}
	userID := middleware.UserID(c)

	record, err := h.service.Get(c.Context(), userID, recordID)
	if err != nil {
		return err
	}

	if c.QueryBool("wait") && !record.Terminal() {
		err = h.waiter.Wait(c.Context(), func(ctx context.Context) (bool, error) {
			record, err = h.service.Get(ctx, userID, recordID)
			if err != nil {
				return false, err
			}
			return record.Terminal(), nil
		})
		if err != nil {
			return err
		}
	}
	return c.JSON(dto.NewAnalysisResponse(record))
}

// Rerun godoc
// @Summary Re-run an analysis
// @Description Re-analyzes the stored document, optionally against a different job description or language
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.RerunAnalysisRequest true "Overrides"
// @Success 202 {object} dto.AnalysisResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /analyses/{id}/rerun [post]
// @Security BearerAuth
func (h *AnalysisHandler) Rerun(c *fiber.Ctx) error {
	recordID := c.Params("id")
	if !validation.IsValidULID(recordID) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", recordID)}
	}

	var req dto.RerunAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	record, err := h.service.Rerun(c.Context(), middleware.UserID(c), recordID, req.JobDescription, domain.Language(req.Language))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.NewAnalysisResponse(record))
}
