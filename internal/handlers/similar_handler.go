package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type SimilarHandler struct {
	repo       repositories.ResumeRepository
	similarity services.SimilarityService
	log        *zap.Logger
}

// NewSimilarHandler builds the handler. A nil similarity service makes every
// request answer 503.
func NewSimilarHandler(repo repositories.ResumeRepository, similarity services.SimilarityService, log *zap.Logger) *SimilarHandler {
	return &SimilarHandler{
		repo:       repo,
		similarity: similarity,
		log:        logger.OrNop(log),
	}
}

// HandleSimilar handles GET /resumes/:id/similar
func (h *SimilarHandler) HandleSimilar(c *fiber.Ctx) error {
	if h.similarity == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "similarity search is not configured")
	}

	resume, err := findResume(c, h.repo)
	if err != nil {
		return err
	}

	limit := services.ClampSimilarLimit(c.QueryInt("limit"))
	matches, err := h.similarity.FindSimilar(c.UserContext(), resume, limit)
	if errors.Is(err, services.ErrNothingToIndex) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "resume has no text to compare")
	}
	if err != nil {
		h.log.Error("similarity search failed", zap.String(logger.FieldResumeID, resume.ID.String()), zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "similarity search failed")
	}

	return c.JSON(models.SimilarResponse{
		ResumeID: resume.ID.String(),
		Matches:  matches,
	})
}
