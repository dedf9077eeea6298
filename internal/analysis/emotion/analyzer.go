package emotion

import (
	"strings"

	"github.com/xiaoyuteam/companion/backend/internal/model/companion"
)

// Label 表示可以附加到对话上的情绪标签。
type Label string

const (
	Neutral   Label = "neutral"
	Happy     Label = "happy"
	Sad       Label = "sad"
	Nostalgic Label = "nostalgic"
	Anxious   Label = "anxious"
	Confused  Label = "confused"
	Excited   Label = "excited"
	Grateful  Label = "grateful"
	Calm      Label = "calm"
)

// Decision 给出情绪识别结果。Confidence 始终落在 [0,1]，Keywords 为命中的词。
type Decision struct {
	Emotion    Label
	Confidence float64
	Sentiment  companion.Sentiment
	Keywords   []string
	Score      int
}

var keywordBuckets = map[Label][]string{
	Happy: {
		"開心", "高興", "快樂", "喜歡", "真好", "太好了", "太棒了", "哈哈", "幸福",
		"happy", "great", "wonderful", "love", "glad",
	},
	Sad: {
		"難過", "傷心", "失落", "想念", "孤單", "寂寞", "哭", "心疼", "捨不得",
		"sad", "miss", "lonely", "cry", "upset",
	},
	Nostalgic: {
		"想起", "小時候", "以前", "年輕時", "當年", "回憶", "懷念", "那時候", "老家", "從前",
		"remember", "back then", "childhood", "those days",
	},
	Anxious: {
		"擔心", "害怕", "緊張", "不安", "煩惱", "著急",
		"worried", "afraid", "nervous", "anxious",
	},
	Confused: {
		"記不清楚", "記不得", "忘記", "忘了", "搞不清楚", "不記得", "糊塗", "想不起來",
		"forget", "can't remember", "confused",
	},
	Excited: {
		"興奮", "期待", "太精彩", "驚喜", "迫不及待",
		"excited", "can't wait", "wow", "amazing",
	},
	Grateful: {
		"謝謝", "感謝", "感恩", "多虧", "辛苦了",
		"thank", "grateful", "appreciate",
	},
	Calm: {
		"平靜", "安心", "放鬆", "舒服", "寧靜", "自在",
		"calm", "peaceful", "relaxed",
	},
}

// scoreOrder fixes the scan order so equal-scored buckets resolve the same
// way on every run; earlier labels win ties.
var scoreOrder = []Label{Happy, Sad, Nostalgic, Anxious, Confused, Excited, Grateful, Calm}

var sentimentByLabel = map[Label]companion.Sentiment{
	Neutral:   companion.SentimentNeutral,
	Happy:     companion.SentimentPositive,
	Excited:   companion.SentimentPositive,
	Grateful:  companion.SentimentPositive,
	Nostalgic: companion.SentimentPositive,
	Calm:      companion.SentimentNeutral,
	Confused:  companion.SentimentNeutral,
	Sad:       companion.SentimentNegative,
	Anxious:   companion.SentimentNegative,
}

// NeutralDecision 是缺省情绪标签：下游统计假设每条对话都带情绪字段，
// 无法判断时也要返回它而不是省略。
func NeutralDecision() Decision {
	return Decision{Emotion: Neutral, Confidence: 0.3, Sentiment: companion.SentimentNeutral}
}

// Analyze 根据长者话语（以及可选的 AI 回复）推断情绪标签。
// 以长者自己的话为准；长者话语没有情绪线索时才参考回复。
func Analyze(userUtterance, aiUtterance string) Decision {
	decision := scoreText(userUtterance)
	if decision.Score == 0 {
		decision = scoreText(aiUtterance)
	}
	if decision.Score == 0 {
		return NeutralDecision()
	}

	confidence := 0.5 + float64(decision.Score)*0.05
	if confidence > 0.95 {
		confidence = 0.95
	}
	decision.Confidence = confidence
	decision.Sentiment = sentimentByLabel[decision.Emotion]
	return decision
}

func scoreText(text string) Decision {
	normalized := strings.TrimSpace(strings.ToLower(text))
	if normalized == "" {
		return Decision{Emotion: Neutral}
	}

	scores := make(map[Label]int)
	hits := make(map[Label][]string)
	for _, label := range scoreOrder {
		for _, word := range keywordBuckets[label] {
			if strings.Contains(normalized, strings.ToLower(word)) {
				scores[label] += 3
				hits[label] = append(hits[label], word)
			}
		}
	}

	if exclamations := strings.Count(text, "!") + strings.Count(text, "！"); exclamations > 0 {
		scores[Excited] += exclamations * 2
	}

	bestLabel := Neutral
	bestScore := 0
	for _, label := range scoreOrder {
		if s := scores[label]; s > bestScore {
			bestScore = s
			bestLabel = label
		}
	}

	if bestScore == 0 {
		return Decision{Emotion: Neutral}
	}
	return Decision{Emotion: bestLabel, Score: bestScore, Keywords: hits[bestLabel]}
}

// ParseLabel 校验外部分类器给出的标签，未知标签返回 false。
func ParseLabel(raw string) (Label, bool) {
	switch Label(strings.ToLower(strings.TrimSpace(raw))) {
	case Neutral:
		return Neutral, true
	case Happy:
		return Happy, true
	case Sad:
		return Sad, true
	case Nostalgic:
		return Nostalgic, true
	case Anxious:
		return Anxious, true
	case Confused:
		return Confused, true
	case Excited:
		return Excited, true
	case Grateful:
		return Grateful, true
	case Calm:
		return Calm, true
	default:
		return "", false
	}
}

// SentimentFor 返回标签对应的情感极性。
func SentimentFor(label Label) companion.Sentiment {
	if s, ok := sentimentByLabel[label]; ok {
		return s
	}
	return companion.SentimentNeutral
}

// Tag 将识别结果转换为可直接写入对话记录的情绪字段。
func (d Decision) Tag() companion.EmotionAnalysis {
	return companion.EmotionAnalysis{
		PrimaryEmotion:    string(d.Emotion),
		Confidence:        d.Confidence,
		Sentiment:         d.Sentiment,
		EmotionalKeywords: append([]string(nil), d.Keywords...),
	}
}

var memorySharingCues = []string{"想起", "記得", "小時候", "以前", "回憶", "當年", "那時候"}

var culturalCues = []string{"過年", "春節", "中秋", "端午", "節日", "傳統", "老歌", "故事", "拜拜", "習俗"}

// TurnType 根据话语内容和情绪标签粗分对话类型。
func TurnType(transcript string, decision Decision) companion.ConversationType {
	normalized := strings.ToLower(transcript)
	for _, cue := range culturalCues {
		if strings.Contains(normalized, cue) {
			return companion.ConversationCulturalDiscussion
		}
	}
	for _, cue := range memorySharingCues {
		if strings.Contains(normalized, cue) {
			return companion.ConversationMemorySharing
		}
	}
	switch decision.Emotion {
	case Sad, Anxious, Confused:
		return companion.ConversationEmotionalSupport
	}
	if decision.Sentiment == companion.SentimentNegative {
		return companion.ConversationEmotionalSupport
	}
	return companion.ConversationCasual
}
