package handlers

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/analysis"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const resumeFormField = "resume"

type UploadHandler struct {
	repo           repositories.ResumeRepository
	storageService services.StorageService
	parser         services.DocumentParser
	analyzer       *analysis.Analyzer
	worker         services.Worker
	maxFileSize    int64
	log            *zap.Logger
}

// NewUploadHandler builds the upload handler. analyzer produces the
// immediate response and should not use the inference gateway; the worker
// runs the full analysis afterwards.
func NewUploadHandler(
	repo repositories.ResumeRepository,
	storageService services.StorageService,
	parser services.DocumentParser,
	analyzer *analysis.Analyzer,
	worker services.Worker,
	maxFileSize int64,
	log *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		repo:           repo,
		storageService: storageService,
		parser:         parser,
		analyzer:       analyzer,
		worker:         worker,
		maxFileSize:    maxFileSize,
		log:            logger.OrNop(log),
	}
}

// HandleUpload handles POST /upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile(resumeFormField)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume uploaded. Please upload a PDF, DOCX or TXT file as 'resume'.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	fileType, err := services.FileTypeOf(file.Filename)
	if err != nil {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"error": "Unsupported file type. Allowed types: pdf, docx, txt",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	text, err := h.parser.ExtractText(fileType, data)
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, services.ErrUnsupportedFileType) {
			status = fiber.StatusUnsupportedMediaType
		}
		h.log.Info("text extraction failed", append(logger.ResumeFields("", fileType), zap.Error(err))...)
		return c.Status(status).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract text from resume: %v", err),
		})
	}

	storagePath, err := h.storageService.SaveFile(file.Filename, data)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	resume := &models.Resume{
		ID:            uuid.New(),
		OriginalName:  file.Filename,
		StoragePath:   storagePath,
		FileType:      fileType,
		FileSize:      file.Size,
		ExtractedText: text,
		Status:        models.StatusPending,
		Progress:      models.ProgressQueued,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.repo.Create(resume); err != nil {
		// Cleanup uploaded file if database insert fails
		if delErr := h.storageService.DeleteFile(storagePath); delErr != nil {
			h.log.Warn("failed to remove orphaned upload", zap.String("path", storagePath), zap.Error(delErr))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save resume record",
		})
	}

	result := h.analyzer.Analyze(c.UserContext(), text)

	processing := false
	if h.worker != nil {
		processing = h.worker.EnqueueJob(resume.ID)
	}

	h.log.Info("resume uploaded",
		append(logger.ResumeFields(resume.ID.String(), fileType),
			zap.Int64("file_size", file.Size),
			zap.Bool("ai_processing", processing),
		)...,
	)

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ResumeID:      resume.ID.String(),
		OriginalName:  resume.OriginalName,
		FileType:      fileType,
		FileSize:      file.Size,
		ExtractedText: text,
		Analysis:      result,
		AIProcessing:  processing,
	})
}
