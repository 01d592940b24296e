package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStrings(v any) []string {
	var out []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range val {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range strings.Split(val, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func coerceObjects(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// responseEntries decodes a list of experience objects.
func responseEntries(v any, kind models.EntryType) []models.ExperienceEntry {
	var entries []models.ExperienceEntry
	for _, obj := range coerceObjects(v) {
		e := models.ExperienceEntry{
			Title:        coerceString(obj["title"]),
			Company:      coerceString(obj["company"]),
			Description:  coerceString(obj["description"]),
			Duration:     coerceString(obj["duration"]),
			Technologies: coerceString(obj["technologies"]),
			Type:         kind,
		}
		if e.Title == "" && e.Company == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// responseProjects decodes gateway projects into candidates so they pass the
// same filtering and classification as locally found ones.
func responseProjects(v any) []RawProjectCandidate {
	var candidates []RawProjectCandidate
	for _, obj := range coerceObjects(v) {
		c := RawProjectCandidate{
			Name:         coerceString(obj["title"]),
			Description:  coerceString(obj["description"]),
			Duration:     coerceString(obj["duration"]),
			Technologies: coerceString(obj["technologies"]),
			Source:       SourceGateway,
		}
		if c.Name == "" && c.Description == "" {
			continue
		}
		c.Name, c.GithubURL = splitGithub(c.Name)
		candidates = append(candidates, c)
	}
	return candidates
}

// responseEducation decodes {"entries": [{degree, institution, dates}]}.
func responseEducation(resp Response) (models.EducationRecord, bool) {
	record := models.NewEducationRecord()
	for _, obj := range coerceObjects(resp["entries"]) {
		entry := models.EducationEntry{
			Degree:      coerceString(obj["degree"]),
			Institution: coerceString(obj["institution"]),
			Dates:       coerceString(obj["dates"]),
		}
		if entry.Institution == "" && entry.Degree == "" {
			continue
		}
		record.Institutions = append(record.Institutions, entry.Institution)
		record.Degrees = append(record.Degrees, entry.Degree)
		record.Dates = append(record.Dates, entry.Dates)
		record.FullEntries = append(record.FullEntries, entry)
	}
	return record, len(record.FullEntries) > 0
}
