package models

type UploadResponse struct {
	ResumeID      string          `json:"resume_id"`
	OriginalName  string          `json:"original_name"`
	FileType      string          `json:"file_type"`
	FileSize      int64           `json:"file_size"`
	ExtractedText string          `json:"extracted_text"`
	Analysis      *AnalysisResult `json:"ai_analysis"`
	AIProcessing  bool            `json:"ai_processing"`
}

type AnalyzeRequest struct {
	Text string `json:"text"`
}

type StatusResponse struct {
	ID       string          `json:"id"`
	Status   string          `json:"status"`
	Progress int             `json:"progress"`
	Analysis *AnalysisResult `json:"analysis,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type SimilarResume struct {
	ResumeID     string  `json:"resume_id"`
	OriginalName string  `json:"original_name,omitempty"`
	Score        float32 `json:"score"`
	Excerpt      string  `json:"excerpt"`
}

type SimilarResponse struct {
	ResumeID string          `json:"resume_id"`
	Matches  []SimilarResume `json:"matches"`
}
