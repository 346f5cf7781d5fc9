package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/screenhq/resume-screener/internal/dto"
	"github.com/screenhq/resume-screener/internal/middleware"
	"github.com/screenhq/resume-screener/internal/usecase"
	"github.com/screenhq/resume-screener/internal/util"
)

const maxResumeSize = 5 * 1024 * 1024

type ScreeningHandler struct {
	uc *usecase.ScreeningUsecase
}

func NewScreeningHandler(uc *usecase.ScreeningUsecase) *ScreeningHandler {
	return &ScreeningHandler{uc: uc}
}

func (h *ScreeningHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/screen", middleware.RateLimiter(1, 4*time.Second), h.Screen)
	app.Get("/sessions/:id", h.Session)
	app.Post("/sessions/:id/records/:recordID/notify", h.Notify)
}

// Screen accepts a job description plus a batch of PDF resumes, runs the
// screening pipeline synchronously and returns the ranked session.
func (h *ScreeningHandler) Screen(c *fiber.Ctx) error {
	jobDescription := strings.TrimSpace(c.FormValue("job_description"))
	if jobDescription == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "job_description is required",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "multipart form is required",
		}, err)
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "at least one resume file is required",
		})
	}

	uploads := make([]usecase.Upload, 0, len(files))
	for _, file := range files {
		data, err := h.readResume(file)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: err.Error(),
			})
		}
		uploads = append(uploads, usecase.Upload{Filename: file.Filename, Data: data})
	}

	session, err := h.uc.Screen(c.Context(), jobDescription, uploads)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "screening failed",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: fmt.Sprintf("Complete! %d resumes analyzed", len(session.Records)),
		Data:    dto.NewScreeningSessionDTO(session, h.uc.NotifierEnabled()),
	})
}

func (h *ScreeningHandler) readResume(file *multipart.FileHeader) ([]byte, error) {
	if file.Size > maxResumeSize {
		return nil, fmt.Errorf("%s is too large (max 5MB)", file.Filename)
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return nil, fmt.Errorf("%s: unsupported file type", file.Filename)
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("cannot read %s", file.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s", file.Filename)
	}
	return data, nil
}

// Session returns the current ranked view of a session, including each
// record's notified state.
func (h *ScreeningHandler) Session(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid session id",
		}, err)
	}

	session, err := h.uc.GetSession(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "session not found",
		})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get screening session",
		Data:    dto.NewScreeningSessionDTO(session, h.uc.NotifierEnabled()),
	})
}

// Notify triggers the decision email for one record.
func (h *ScreeningHandler) Notify(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid session id",
		}, err)
	}
	recordID, err := uuid.Parse(c.Params("recordID"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid record id",
		}, err)
	}

	sent, err := h.uc.Notify(c.Context(), sessionID, recordID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	}
	if !sent {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "email delivery failed, record remains retryable",
		})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Email sent successfully!",
	})
}
