package analysis

import (
	"regexp"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var (
	educationDates = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*[-–]\s*(?:(?:19|20)\d{2}|present|current)\b`)
	degreeKeyword  = regexp.MustCompile(`\b(?:Bachelor|Master|Associate|Doctor(?:ate)?|Diploma|Certificate|Ph\.?D|B\.?Sc?|M\.?Sc?|B\.?A|M\.?B\.?A|B\.?Eng|M\.?Eng|B\.?Tech|M\.?Tech)\b`)
	commaTriple    = regexp.MustCompile(`^([^,]+),\s*([^,]+),\s*([^,]+)$`)
)

// ExtractEducation parses the EDUCATION section of text. A résumé without
// one yields an empty record.
func ExtractEducation(text string) models.EducationRecord {
	record := models.NewEducationRecord()

	section, err := FindSection(NormalizeLines(text), EducationSection)
	if err != nil {
		return record
	}

	for _, block := range educationBlocks(section) {
		entry, ok := parseEducationBlock(block)
		if !ok {
			entry, ok = parseEducationCommas(block)
		}
		if !ok {
			record.FullEntries = append(record.FullEntries, models.EducationEntry{Raw: block})
			continue
		}
		record.Institutions = append(record.Institutions, entry.Institution)
		record.Degrees = append(record.Degrees, entry.Degree)
		record.Dates = append(record.Dates, entry.Dates)
		record.FullEntries = append(record.FullEntries, entry)
	}
	return record
}

// educationBlocks cuts the section after every date range. Text after the
// last range belongs to the last block. Without any range each line is a
// block of its own.
func educationBlocks(section string) []string {
	ranges := educationDates.FindAllStringIndex(section, -1)
	if len(ranges) == 0 {
		return splitLines(section)
	}

	var blocks []string
	start := 0
	for i, loc := range ranges {
		end := loc[1]
		if i == len(ranges)-1 {
			end = len(section)
		}
		if block := CollapseWhitespace(section[start:end]); block != "" {
			blocks = append(blocks, block)
		}
		start = loc[1]
	}
	return blocks
}

// parseEducationBlock reads "<Institution> <Degree words> <YYYY-YYYY>". The
// degree is the text between the institution and the date range; it is left
// empty when the range does not follow the institution.
func parseEducationBlock(block string) (models.EducationEntry, bool) {
	dates := educationDates.FindString(block)
	kw := degreeKeyword.FindStringIndex(block)
	if dates == "" || kw == nil {
		return models.EducationEntry{}, false
	}

	institution := strings.Trim(strings.TrimSpace(block[:kw[0]]), ",|-–")
	institution = strings.TrimSpace(institution)
	if institution == "" {
		return models.EducationEntry{}, false
	}

	var degree string
	instEnd := kw[0]
	if dateAt := strings.Index(block, dates); dateAt > instEnd {
		degree = strings.TrimSpace(strings.Trim(strings.TrimSpace(block[instEnd:dateAt]), ",|-–("))
	}

	return models.EducationEntry{
		Institution: institution,
		Degree:      degree,
		Dates:       dates,
	}, true
}

// parseEducationCommas reads "<degree>, <institution>, <dates>".
func parseEducationCommas(block string) (models.EducationEntry, bool) {
	m := commaTriple.FindStringSubmatch(CollapseWhitespace(block))
	if m == nil {
		return models.EducationEntry{}, false
	}
	return models.EducationEntry{
		Degree:      strings.TrimSpace(m[1]),
		Institution: strings.TrimSpace(m[2]),
		Dates:       strings.TrimSpace(m[3]),
	}, true
}
