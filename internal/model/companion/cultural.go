package companion

// CulturalCategory groups cultural reference content.
type CulturalCategory string

const (
	CulturalFestival  CulturalCategory = "festival"
	CulturalMusic     CulturalCategory = "music"
	CulturalStory     CulturalCategory = "story"
	CulturalTradition CulturalCategory = "tradition"
	CulturalFood      CulturalCategory = "food"
	CulturalHistory   CulturalCategory = "history"
)

// CulturalContent is read-only reference material (festivals, songs, stories)
// the companion draws on. Loaded once, immutable.
type CulturalContent struct {
	ID                 string           `json:"id"`
	Category           CulturalCategory `json:"category"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	ImageURL           string           `json:"image_url,omitempty"`
	ContentDetails     map[string]any   `json:"content_details,omitempty"` // category-specific payload
	CulturalOrigin     string           `json:"cultural_origin"`
	LanguagesAvailable []string         `json:"languages_available"`
	Tags               []string         `json:"tags"`
}
