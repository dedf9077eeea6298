package companion

import "time"

// CareStage describes how far the patient's cognitive decline has progressed.
type CareStage string

const (
	CareStageEarly  CareStage = "early"
	CareStageMiddle CareStage = "middle"
	CareStageLate   CareStage = "late"
)

// Patient is the active user of the companion. Exactly one patient is bound
// to a session; it is replaced wholesale on load and never deleted.
type Patient struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	PrimaryLanguage    string             `json:"primary_language"` // e.g. "zh-TW", "en-US", "min-nan"
	SecondaryLanguage  string             `json:"secondary_language,omitempty"`
	CulturalBackground string             `json:"cultural_background"` // e.g. "taiwanese", "canadian_chinese"
	Location           string             `json:"location"`
	CareStage          CareStage          `json:"care_stage"`
	Interests          []string           `json:"interests"`
	MedicalNotes       string             `json:"medical_notes,omitempty"`
	EmergencyContacts  []EmergencyContact `json:"emergency_contacts"`
	Timezone           string             `json:"timezone"`
	CreatedDate        time.Time          `json:"created_date"`
	UpdatedDate        time.Time          `json:"updated_date"`
}

// EmergencyContact 紧急联络人信息。
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Language     string `json:"language"`
	Timezone     string `json:"timezone"`
}
