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

// InterviewHandler handles interview session HTTP requests
type InterviewHandler struct {
	service   service.InterviewService
	validator *validation.Validator
	waiter    *polling.Waiter
}

// NewInterviewHandler creates a new InterviewHandler instance
func NewInterviewHandler(service service.InterviewService, validator *validation.Validator, waiter *polling.Waiter) *InterviewHandler {
	return &InterviewHandler{
		service:   service,
		validator: validator,
		waiter:    waiter,
	}
}

// Start godoc
// @Summary Start a mock interview
// @Description Generates the question set and creates a new session
// @Tags interviews
// @Accept json
// @Produce json
// @Param request body dto.StartInterviewRequest true "Session parameters"
// @Success 201 {object} dto.StartInterviewResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /interviews [post]
// @Security BearerAuth
func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	var req dto.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateStartInterviewRequest(&req); len(errs) > 0 {
		return errs
	}

	session, questions, err := h.service.Start(c.Context(), req.ToDomain(middleware.UserID(c)))
	if err != nil {
		return err
	}

	resp := dto.StartInterviewResponse{
		Session:   dto.NewSessionResponse(session),
		Questions: make([]dto.QuestionResponse, 0, len(questions)),
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, dto.NewQuestionResponse(q))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get godoc
// @Summary Get an interview session
// @Description With wait=true on a completed session the request blocks until the aggregate feedback lands or the polling budget runs out
// @Tags interviews
// @Produce json
// @Param id path string true "Session ID"
// @Param wait query bool false "Block until the aggregate feedback is written or failed"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /interviews/{id} [get]
// @Security BearerAuth
func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}
	userID := middleware.UserID(c)

	session, err := h.service.Get(c.Context(), userID, sessionID)
	if err != nil {
		return err
	}

	if c.QueryBool("wait") && session.Status == domain.SessionCompleted && !session.FeedbackResolved() {
		err = h.waiter.Wait(c.Context(), func(ctx context.Context) (bool, error) {
			session, err = h.service.Get(ctx, userID, sessionID)
			if err != nil {
				return false, err
			}
			return session.FeedbackResolved(), nil
		})
		if err != nil {
			return err
		}
	}

	return c.JSON(dto.NewSessionResponse(session))
}

// GetQuestions godoc
// @Summary Get a session's questions
// @Tags interviews
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /interviews/{id}/questions [get]
// @Security BearerAuth
func (h *InterviewHandler) GetQuestions(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}
	questions, err := h.service.GetQuestions(c.Context(), middleware.UserID(c), sessionID)
	if err != nil {
		return err
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		resp = append(resp, dto.NewQuestionResponse(q))
	}
	return c.JSON(resp)
}

// SubmitAnswer godoc
// @Summary Submit an answer to the current question
// @Description Records the answer and schedules its evaluation; poll the answer resource for the result
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SubmitAnswerRequest true "Answer"
// @Success 202 {object} dto.AnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /interviews/{id}/answers [post]
// @Security BearerAuth
func (h *InterviewHandler) SubmitAnswer(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateSubmitAnswerRequest(&req); len(errs) > 0 {
		return errs
	}

	answer := &domain.InterviewAnswer{
		SessionID:       sessionID,
		QuestionID:      req.QuestionID,
		Type:            domain.AnswerMode(req.AnswerType),
		Text:            req.AnswerText,
		AudioURL:        req.AudioURL,
		Transcript:      req.Transcript,
		DurationSeconds: req.DurationSeconds,
	}
	answer, err := h.service.SubmitAnswer(c.Context(), middleware.UserID(c), answer)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.NewAnswerResponse(answer))
}

// GetAnswers godoc
// @Summary Get a session's answers with their evaluation state
// @Description With wait=true the request blocks until every answer is evaluated or the polling budget runs out
// @Tags interviews
// @Produce json
// @Param id path string true "Session ID"
// @Param wait query bool false "Block until evaluations finish"
// @Success 200 {array} dto.AnswerResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /interviews/{id}/answers [get]
// @Security BearerAuth
func (h *InterviewHandler) GetAnswers(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}
	userID := middleware.UserID(c)

	answers, err := h.service.GetAnswers(c.Context(), userID, sessionID)
	if err != nil {
		return err
	}

	if c.QueryBool("wait") && !allEvaluated(answers) {
		err = h.waiter.Wait(c.Context(), func(ctx context.Context) (bool, error) {
			answers, err = h.service.GetAnswers(ctx, userID, sessionID)
			if err != nil {
				return false, err
			}
			return allEvaluated(answers), nil
		})
		if err != nil {
			return err
		}
	}

	resp := make([]dto.AnswerResponse, 0, len(answers))
	for _, a := range answers {
		resp = append(resp, dto.NewAnswerResponse(a))
	}
	return c.JSON(resp)
}

// allEvaluated reports whether every answer reached a terminal evaluation
// state, scored or failed.
func allEvaluated(answers []*domain.InterviewAnswer) bool {
	for _, a := range answers {
		if !a.Analyzed && a.EvaluationError == "" {
			return false
		}
	}
	return true
}

// Complete godoc
// @Summary Complete an interview session
// @Description Closes the session and schedules the aggregate feedback; poll the session resource for it
// @Tags interviews
// @Produce json
// @Param id path string true "Session ID"
// @Success 202 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /interviews/{id}/complete [post]
// @Security BearerAuth
func (h *InterviewHandler) Complete(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}
	session, err := h.service.Complete(c.Context(), middleware.UserID(c), sessionID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.NewSessionResponse(session))
}

// Pause godoc
// @Summary Pause an interview session
// @Tags interviews
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /interviews/{id}/pause [post]
// @Security BearerAuth
func (h *InterviewHandler) Pause(c *fiber.Ctx) error {
	return h.transition(c, h.service.Pause)
}

// Resume godoc
// @Summary Resume a paused interview session
// @Tags interviews
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /interviews/{id}/resume [post]
// @Security BearerAuth
func (h *InterviewHandler) Resume(c *fiber.Ctx) error {
	return h.transition(c, h.service.Resume)
}

// SuggestAnswers godoc
// @Summary Generate model answer variants for a question
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param questionId path string true "Question ID"
// @Param request body dto.SuggestAnswersRequest true "Variant count"
// @Success 200 {object} dto.SuggestAnswersResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /interviews/{id}/questions/{questionId}/suggestions [post]
// @Security BearerAuth
func (h *InterviewHandler) SuggestAnswers(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	questionID := c.Params("questionId")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}
	if !validation.IsValidULID(questionID) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("questionId", questionID)}
	}

	var req dto.SuggestAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	variants, err := h.service.SuggestAnswers(c.Context(), middleware.UserID(c), sessionID, questionID, req.Count)
	if err != nil {
		return err
	}
	return c.JSON(dto.SuggestAnswersResponse{Variants: variants})
}

func (h *InterviewHandler) transition(c *fiber.Ctx, step func(ctx context.Context, userID, sessionID string) (*domain.InterviewSession, error)) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}
	session, err := step(c.Context(), middleware.UserID(c), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(session))
}
