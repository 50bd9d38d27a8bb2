package validation

import (
	"regexp"
	"strings"

	"mockmate/internal/domain"
	"mockmate/internal/dto"
)

const maxAnswerTextLength = 10000

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateStartInterviewRequest validates the start interview request
func (v *Validator) ValidateStartInterviewRequest(req *dto.StartInterviewRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	switch domain.InterviewType(req.Type) {
	case domain.InterviewTechnical, domain.InterviewBehavioral, domain.InterviewCaseStudy, domain.InterviewMixed:
	case "":
		errors = append(errors, domain.NewMissingFieldError("type"))
	default:
		errors = append(errors, domain.NewInvalidFormatError("type", req.Type))
	}

	switch domain.Difficulty(req.Difficulty) {
	case domain.DifficultyJunior, domain.DifficultyMid, domain.DifficultySenior:
	case "":
		errors = append(errors, domain.NewMissingFieldError("difficulty"))
	default:
		errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}

	switch domain.AnswerMode(req.Mode) {
	case domain.AnswerModeText, domain.AnswerModeAudio:
	case "":
		errors = append(errors, domain.NewMissingFieldError("mode"))
	default:
		errors = append(errors, domain.NewInvalidFormatError("mode", req.Mode))
	}

	if req.NumQuestions < domain.MinQuestionsPerSession || req.NumQuestions > domain.MaxQuestionsPerSession {
		errors = append(errors, domain.NewOutOfRangeError("numQuestions", req.NumQuestions,
			domain.MinQuestionsPerSession, domain.MaxQuestionsPerSession))
	}

	if errs := validateLanguage(req.Language); errs != nil {
		errors = append(errors, errs...)
	}
	return errors
}

// ValidateSubmitAnswerRequest validates the submit answer request
func (v *Validator) ValidateSubmitAnswerRequest(req *dto.SubmitAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.QuestionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("questionId"))
	} else if !IsValidULID(req.QuestionID) {
		errors = append(errors, domain.NewInvalidFormatError("questionId", req.QuestionID))
	}

	switch domain.AnswerMode(req.AnswerType) {
	case domain.AnswerModeText:
		if strings.TrimSpace(req.AnswerText) == "" {
			errors = append(errors, domain.NewMissingFieldError("answerText"))
		} else if len(req.AnswerText) > maxAnswerTextLength {
			errors = append(errors, domain.NewOutOfRangeError("answerText", len(req.AnswerText), 1, maxAnswerTextLength))
		}
	case domain.AnswerModeAudio:
		if strings.TrimSpace(req.AudioURL) == "" {
			errors = append(errors, domain.NewMissingFieldError("audioUrl"))
		}
	case "":
		errors = append(errors, domain.NewMissingFieldError("answerType"))
	default:
		errors = append(errors, domain.NewInvalidFormatError("answerType", req.AnswerType))
	}

	if req.DurationSeconds < 1 || req.DurationSeconds > 3600 {
		errors = append(errors, domain.NewOutOfRangeError("durationSeconds", req.DurationSeconds, 1, 3600))
	}
	return errors
}

// ValidateUploadAnalysisRequest validates the document analysis upload
func (v *Validator) ValidateUploadAnalysisRequest(req *dto.UploadAnalysisRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.FileName) == "" {
		errors = append(errors, domain.NewMissingFieldError("fileName"))
	}
	if strings.TrimSpace(req.ExtractedText) == "" {
		errors = append(errors, domain.NewMissingFieldError("extractedText"))
	}
	if errs := validateLanguage(req.Language); errs != nil {
		errors = append(errors, errs...)
	}
	return errors
}

// ValidateSessionID validates a session id path parameter
func (v *Validator) ValidateSessionID(sessionID string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(sessionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("sessionId"))
	} else if !IsValidULID(sessionID) {
		errors = append(errors, domain.NewInvalidFormatError("sessionId", sessionID))
	}
	return errors
}

func validateLanguage(language string) domain.ValidationErrors {
	switch domain.Language(language) {
	case "", domain.LanguageUzbek, domain.LanguageRussian, domain.LanguageEnglish:
		return nil
	default:
		return domain.ValidationErrors{domain.NewInvalidFormatError("language", language)}
	}
}

// IsValidULID checks Crockford base32 ULID format.
func IsValidULID(id string) bool {
	return ulidPattern.MatchString(id)
}
