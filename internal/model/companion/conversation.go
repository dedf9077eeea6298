package companion

import "time"

// ConversationType classifies what a turn with 小雨 was mostly about.
type ConversationType string

const (
	ConversationCasual             ConversationType = "casual"
	ConversationEmotionalSupport   ConversationType = "emotional_support"
	ConversationMemorySharing      ConversationType = "memory_sharing"
	ConversationCulturalDiscussion ConversationType = "cultural_discussion"
)

// Sentiment is the coarse polarity attached to an emotion tag.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Conversation records one completed turn: what the patient said and how the
// companion answered. Immutable once committed.
type Conversation struct {
	ID               string           `json:"id"`
	PatientID        string           `json:"patient_id"`
	AudioURL         string           `json:"audio_url,omitempty"`
	Transcript       string           `json:"transcript"`
	DetectedLanguage string           `json:"detected_language"`
	AIResponse       string           `json:"ai_response"`
	ConversationType ConversationType `json:"conversation_type"`
	EmotionAnalysis  EmotionAnalysis  `json:"emotion_analysis"`
	CulturalContext  string           `json:"cultural_context,omitempty"`
	TranslatedText   string           `json:"translated_text,omitempty"`
	Location         *GeoLocation     `json:"location,omitempty"`
	Duration         int              `json:"duration,omitempty"` // seconds
	CreatedDate      time.Time        `json:"created_date"`
	UpdatedDate      time.Time        `json:"updated_date"`
}

// EmotionAnalysis 情绪标签。每条对话都必须携带一份，下游统计依赖它的存在。
type EmotionAnalysis struct {
	PrimaryEmotion    string    `json:"primary_emotion"`
	Confidence        float64   `json:"confidence"` // 0~1
	Sentiment         Sentiment `json:"sentiment"`
	EmotionalKeywords []string  `json:"emotional_keywords,omitempty"`
}

// GeoLocation is an optional place attached to a conversation.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}
