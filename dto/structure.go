package dto

// Structure analysis DTOs. Issues block compliance, suggestions never do.
type StructureValidationResponse struct {
	IsValid     bool     `json:"is_valid"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

type StructureDiffResponse struct {
	MissingFields        []string `json:"missing_fields"`
	ExtraFields          []string `json:"extra_fields"`
	StructureDifferences []string `json:"structure_differences"`
}

type MigrationSuggestionResponse struct {
	SQLUpdates []string `json:"sql_updates"`
	Warnings   []string `json:"warnings"`
}

type CurriculumStructureReport struct {
	CurriculumID        string   `json:"curriculum_id"`
	TotalLessons        int      `json:"total_lessons"`
	StructureCompliance int      `json:"structure_compliance"` // 0-100 percent
	CommonIssues        []string `json:"common_issues"`        // top 5, annotated with occurrence counts
	MigrationRequired   int      `json:"migration_required"`
}
