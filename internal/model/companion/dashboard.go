package companion

// ReminderType of a dashboard reminder.
type ReminderType string

const (
	ReminderMedication  ReminderType = "medication"
	ReminderAppointment ReminderType = "appointment"
	ReminderActivity    ReminderType = "activity"
	ReminderCustom      ReminderType = "custom"
)

// Reminder 今日提醒事项。
type Reminder struct {
	ID        string       `json:"id"`
	Type      ReminderType `json:"type"`
	Title     string       `json:"title"`
	Time      string       `json:"time,omitempty"` // e.g. "09:00"
	Completed bool         `json:"completed"`
}

// DashboardSummary is derived from the conversation and memory collections;
// it is recomputed on read and never stored as a source of truth.
type DashboardSummary struct {
	TodayConversations int        `json:"today_conversations"`
	TodayMemories      int        `json:"today_memories"`
	OverallMood        string     `json:"overall_mood"`
	Reminders          []Reminder `json:"reminders"`
	RecentHighlights   []string   `json:"recent_highlights"`
}

// EmotionTrend 情绪趋势采样，每个统计周期一条。
type EmotionTrend struct {
	Date  string `json:"date"`
	Mood  string `json:"mood"`
	Score int    `json:"score"` // 1~5
}
