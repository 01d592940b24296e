package handlers

import "github.com/gofiber/fiber/v2"

type Routes struct {
	Upload  *UploadHandler
	Status  *StatusHandler
	Analyze *AnalyzeHandler
	Similar *SimilarHandler
}

// Register mounts the résumé endpoints on api.
func (r Routes) Register(api fiber.Router) {
	api.Post("/upload", r.Upload.HandleUpload)
	api.Post("/analyze", r.Analyze.HandleAnalyze)
	api.Get("/resumes/:id/status", r.Status.HandleGetStatus)
	api.Get("/resumes/:id/similar", r.Similar.HandleSimilar)
}

// Endpoints lists the routes mounted by Register under /api/v1.
func Endpoints() []string {
	return []string{
		"POST /api/v1/upload",
		"POST /api/v1/analyze",
		"GET /api/v1/resumes/:id/status",
		"GET /api/v1/resumes/:id/similar",
	}
}
