package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/analysis"
	"alfredoptarigan/resume-analyzer/internal/models"
)

// maxAnalyzeTime bounds one synchronous analysis: five gateway calls plus
// the local heuristics.
const maxAnalyzeTime = 3 * time.Minute

type AnalyzeHandler struct {
	analyzer *analysis.Analyzer
}

func NewAnalyzeHandler(analyzer *analysis.Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), maxAnalyzeTime)
	defer cancel()

	return c.JSON(h.analyzer.Analyze(ctx, req.Text))
}
