package shared

const (
	UserID    = "user_id"
	UserRole  = "user_role"
	UserEmail = "user_email"

	RoleEditor     = "editor"
	RoleSuperAdmin = "super_admin"

	LessonTypeConversation  = "conversation"
	LessonTypePronunciation = "pronunciation"
	LessonTypeVocabulary    = "vocabulary"
	LessonTypeGrammar       = "grammar"
	LessonTypeReview        = "review"

	DifficultyBeginner     = "beginner"
	DifficultyElementary   = "elementary"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"

	CategoryHair      = "hair"
	CategoryNail      = "nail"
	CategoryEsthetic  = "esthetic"
	CategoryMakeup    = "makeup"
	CategoryReception = "reception"
	CategoryGeneral   = "general"

	PromptCategorySystem     = "system_prompt"
	PromptCategoryEvaluation = "evaluation_prompt"

	ActivityAIConversation      = "ai_conversation"
	ActivityApplicationPractice = "application_practice"
)

// LessonTypes lists every accepted lesson content type.
var LessonTypes = []string{
	LessonTypeConversation,
	LessonTypePronunciation,
	LessonTypeVocabulary,
	LessonTypeGrammar,
	LessonTypeReview,
}

var Difficulties = []string{
	DifficultyBeginner,
	DifficultyElementary,
	DifficultyIntermediate,
	DifficultyAdvanced,
}

var CurriculumCategories = []string{
	CategoryHair,
	CategoryNail,
	CategoryEsthetic,
	CategoryMakeup,
	CategoryReception,
	CategoryGeneral,
}
