package companion

import "time"

// Relationship of a family member to the patient.
type Relationship string

const (
	RelationSon        Relationship = "son"
	RelationDaughter   Relationship = "daughter"
	RelationGrandchild Relationship = "grandchild"
	RelationSpouse     Relationship = "spouse"
	RelationSibling    Relationship = "sibling"
	RelationCaregiver  Relationship = "caregiver"
	RelationOther      Relationship = "other"
)

// FamilyMember 家属档案。会话初始化时载入，核心流程不会修改它。
type FamilyMember struct {
	ID                      string                   `json:"id"`
	PatientID               string                   `json:"patient_id"`
	Name                    string                   `json:"name"`
	Relationship            Relationship             `json:"relationship"`
	PreferredLanguage       string                   `json:"preferred_language"`
	Timezone                string                   `json:"timezone"`
	NotificationPreferences *NotificationPreferences `json:"notification_preferences,omitempty"`
	ContactInfo             *ContactInfo             `json:"contact_info,omitempty"`
	CreatedDate             time.Time                `json:"created_date"`
	UpdatedDate             time.Time                `json:"updated_date"`
}

// NotificationPreferences 家属想收到哪些提醒。
type NotificationPreferences struct {
	DailySummary    bool   `json:"daily_summary"`
	EmergencyAlerts bool   `json:"emergency_alerts"`
	MemoryShared    bool   `json:"memory_shared"`
	MoodChanges     bool   `json:"mood_changes"`
	PreferredTime   string `json:"preferred_time,omitempty"` // e.g. "09:00"
}

// ContactInfo 家属联系方式。
type ContactInfo struct {
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	MessagingApp string `json:"messaging_app,omitempty"` // whatsapp, line, wechat, telegram
	MessagingID  string `json:"messaging_id,omitempty"`
}
