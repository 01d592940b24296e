package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type StatusHandler struct {
	repo repositories.ResumeRepository
}

func NewStatusHandler(repo repositories.ResumeRepository) *StatusHandler {
	return &StatusHandler{
		repo: repo,
	}
}

// HandleGetStatus handles GET /resumes/:id/status
func (h *StatusHandler) HandleGetStatus(c *fiber.Ctx) error {
	resume, err := findResume(c, h.repo)
	if err != nil {
		return err
	}

	response := models.StatusResponse{
		ID:       resume.ID.String(),
		Status:   string(resume.Status),
		Progress: resume.Progress,
	}

	// Results are only shown once the analysis has finished
	if resume.Finished() {
		response.Analysis = resume.Results
		response.Error = resume.ErrorMessage
	}

	return c.JSON(response)
}

// findResume loads the résumé named by the :id route parameter. A bad or
// unknown id comes back as a *fiber.Error for ErrorHandler.
func findResume(c *fiber.Ctx, repo repositories.ResumeRepository) (*models.Resume, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid resume ID format")
	}

	resume, err := repo.FindByID(id)
	if errors.Is(err, repositories.ErrResumeNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Resume not found")
	}
	if err != nil {
		return nil, err
	}
	return resume, nil
}
