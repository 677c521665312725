package handler

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"studybuddy/internal/extract"
	"studybuddy/internal/generation"
	"studybuddy/internal/model"
	"studybuddy/internal/service"
)

// StudyHandler serves the document and study endpoints.
type StudyHandler struct {
	svc      service.StudyService
	validate *validator.Validate
	log      *zap.Logger
}

// NewStudyHandler constructs a StudyHandler.
func NewStudyHandler(svc service.StudyService, log *zap.Logger) *StudyHandler {
	if log == nil {
		log = zap.NewNop()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &StudyHandler{svc: svc, validate: v, log: log}
}

// Upload godoc
// @Summary      Upload a study document
// @Description  Extracts the text of a PDF or plain-text file. Nothing is stored.
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF or text file"
// @Success      200  {object}  model.UploadResult
// @Failure      400  {object}  errorPayload
// @Failure      413  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Router       /upload [post]
func (h *StudyHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "No file uploaded")
	}

	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "Cannot open uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "Cannot read uploaded file")
	}

	res, err := h.svc.Upload(c.UserContext(), model.UploadedDocument{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "Unsupported file type. Please upload PDF or TXT files.")
		case errors.Is(err, extract.ErrTooShort):
			return writeError(c, fiber.StatusBadRequest, "DOCUMENT_TOO_SHORT", "Document is too short or empty")
		case errors.Is(err, extract.ErrExtraction):
			return writeError(c, fiber.StatusBadRequest, "EXTRACTION_FAILED", "Could not extract text from the document")
		}
		h.log.Error("upload failed",
			zap.String("request_id", requestIDFromCtx(c)),
			zap.String("filename", fh.Filename),
			zap.Error(err),
		)
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Error processing file")
	}
	return c.JSON(res)
}

// Explain godoc
// @Summary      Explain a concept from the document
// @Tags         study
// @Accept       json
// @Produce      json
// @Param        request  body  model.ExplainRequest  true  "Document content and question"
// @Success      200  {object}  model.ExplanationResult
// @Failure      422  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Failure      504  {object}  errorPayload
// @Router       /explain [post]
func (h *StudyHandler) Explain(c *fiber.Ctx) error {
	var req model.ExplainRequest
	if err := h.bind(c, &req); err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	}

	res, err := h.svc.Explain(c.UserContext(), req.DocumentContent, req.Question)
	if err != nil {
		return h.generationError(c, err, "explanation")
	}
	return c.JSON(res)
}

// GenerateQuiz godoc
// @Summary      Generate a multiple-choice quiz
// @Tags         study
// @Accept       json
// @Produce      json
// @Param        request  body  model.QuizRequest  true  "Document content and question count (default 5)"
// @Success      200  {object}  model.QuizResult
// @Failure      422  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Failure      504  {object}  errorPayload
// @Router       /generate-quiz [post]
func (h *StudyHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req model.QuizRequest
	if err := h.bind(c, &req); err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	}

	n := 0
	if req.NumQuestions != nil {
		n = *req.NumQuestions
	}
	res, err := h.svc.GenerateQuiz(c.UserContext(), req.DocumentContent, n)
	if err != nil {
		return h.generationError(c, err, "quiz")
	}
	return c.JSON(res)
}

// StudyPlan godoc
// @Summary      Build a day-by-day study plan
// @Tags         study
// @Accept       json
// @Produce      json
// @Param        request  body  model.StudyPlanRequest  true  "Document content and days until the exam (default 7)"
// @Success      200  {object}  model.StudyPlanResult
// @Failure      422  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Failure      504  {object}  errorPayload
// @Router       /study-plan [post]
func (h *StudyHandler) StudyPlan(c *fiber.Ctx) error {
	var req model.StudyPlanRequest
	if err := h.bind(c, &req); err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	}

	days := 0
	if req.DaysUntilExam != nil {
		days = *req.DaysUntilExam
	}
	res, err := h.svc.StudyPlan(c.UserContext(), req.DocumentContent, days)
	if err != nil {
		return h.generationError(c, err, "study plan")
	}
	return c.JSON(res)
}

// bind decodes the JSON body into dst and validates it.
// The returned error message is safe to show to the client.
func (h *StudyHandler) bind(c *fiber.Ctx, dst any) error {
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		return errors.New("request body must be application/json")
	}
	if err := c.BodyParser(dst); err != nil {
		return errors.New("request body is not valid JSON")
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.New("invalid request body")
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// generationError maps a failed generation to 504 on timeout and 500 otherwise.
// The cause is logged, never returned.
func (h *StudyHandler) generationError(c *fiber.Ctx, err error, what string) error {
	h.log.Error("generation failed",
		zap.String("request_id", requestIDFromCtx(c)),
		zap.String("task", what),
		zap.Error(err),
	)
	if generation.IsTimeout(err) {
		return writeError(c, fiber.StatusGatewayTimeout, "GENERATION_TIMEOUT", "Timed out generating "+what)
	}
	return writeError(c, fiber.StatusInternalServerError, "GENERATION_FAILED", "Failed to generate "+what)
}
