package middleware

import (
	"errors"
	"net/http"

	"mockmate/internal/domain"
	"mockmate/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse represents validation error response
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

// ErrorHandler is a centralized error handling middleware
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:    string(domain.CodeValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Errors:  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			log.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			)

			response := ErrorResponse{
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
				Status:  statusCode,
			}
			if len(domainErr.Context) > 0 {
				response.Details = domainErr.Context
			}
			return c.Status(statusCode).JSON(response)
		}

		// Provider failures that escaped service wrapping map per kind:
		// misconfiguration is the operator's problem, everything else is
		// transient provider trouble.
		var providerErr *domain.ProviderError
		if errors.As(err, &providerErr) {
			mapped := mapProviderError(providerErr)
			statusCode := mapDomainErrorToHTTPStatus(mapped)
			log.Error("AI provider error occurred",
				zap.String("kind", string(providerErr.Kind)),
				zap.Int("status", statusCode),
				zap.Error(providerErr.Cause),
			)
			return c.Status(statusCode).JSON(ErrorResponse{
				Code:    string(mapped.Code),
				Message: mapped.Message,
				Status:  statusCode,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

// mapProviderError translates a raw provider failure into the domain error
// the client should see. Auth and request-shape rejections never heal on
// retry, so they surface as configuration errors.
func mapProviderError(err *domain.ProviderError) *domain.DomainError {
	switch err.Kind {
	case domain.ProviderAuthFailure, domain.ProviderInvalidRequest:
		return domain.NewAIConfigurationError(err)
	case domain.ProviderRateLimited:
		mapped := domain.NewAIProviderError(err)
		mapped.Message = "AI provider rate limit exhausted, retry shortly"
		return mapped
	default:
		return domain.NewAIProviderError(err)
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound, domain.CodeSessionNotFound, domain.CodeAnalysisNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeValidation, domain.CodeMissingField,
		domain.CodeInvalidFormat, domain.CodeOutOfRange, domain.CodeQuestionNotInSession:
		return http.StatusBadRequest
	case domain.CodeSessionCompleted, domain.CodeSessionNotActive:
		return http.StatusConflict
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeQuotaExceeded:
		return http.StatusTooManyRequests
	case domain.CodeAIProviderError:
		return http.StatusServiceUnavailable
	case domain.CodeAIConfigurationError:
		return http.StatusBadGateway
	case domain.CodeStillProcessing:
		return http.StatusAccepted
	default:
		return http.StatusInternalServerError
	}
}
