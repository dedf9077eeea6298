package emotion

import (
	"testing"

	"github.com/xiaoyuteam/companion/backend/internal/model/companion"
)

func TestAnalyzeSadUtterance(t *testing.T) {
	decision := Analyze("我今天好難過，很想念老伴", "")
	if decision.Emotion != Sad {
		t.Fatalf("expected sad, got %s", decision.Emotion)
	}
	if decision.Sentiment != companion.SentimentNegative {
		t.Fatalf("expected negative sentiment, got %s", decision.Sentiment)
	}
	if decision.Confidence <= 0.5 || decision.Confidence > 0.95 {
		t.Fatalf("confidence out of range: %f", decision.Confidence)
	}
	if len(decision.Keywords) == 0 {
		t.Fatal("expected matched keywords to be reported")
	}
}

func TestAnalyzeExclamationsBoostExcited(t *testing.T) {
	decision := Analyze("太精彩了！！！", "")
	if decision.Emotion != Excited {
		t.Fatalf("expected excited, got %s", decision.Emotion)
	}
}

func TestAnalyzeFallsBackToAIUtterance(t *testing.T) {
	decision := Analyze("嗯。", "聽起來您今天很平靜、很放鬆呢")
	if decision.Emotion != Calm {
		t.Fatalf("expected calm from AI utterance, got %s", decision.Emotion)
	}
}

func TestAnalyzeNoCuesReturnsNeutralDefault(t *testing.T) {
	decision := Analyze("嗯。", "好的。")
	if decision.Emotion != Neutral {
		t.Fatalf("expected neutral, got %s", decision.Emotion)
	}
	if decision.Confidence != 0.3 {
		t.Fatalf("expected default low confidence 0.3, got %f", decision.Confidence)
	}
	if decision.Sentiment != companion.SentimentNeutral {
		t.Fatalf("expected neutral sentiment, got %s", decision.Sentiment)
	}
}

func TestAnalyzeTieIsDeterministic(t *testing.T) {
	// 開心与難過各命中一词，得分相同；扫描顺序固定，结果必须稳定。
	for i := 0; i < 20; i++ {
		decision := Analyze("又開心又難過", "")
		if decision.Emotion != Happy {
			t.Fatalf("tie must resolve to the same label every run, got %s", decision.Emotion)
		}
	}
}

func TestParseLabelRejectsUnknown(t *testing.T) {
	if _, ok := ParseLabel("melancholic"); ok {
		t.Fatal("expected unknown label to be rejected")
	}
	label, ok := ParseLabel("  Nostalgic ")
	if !ok || label != Nostalgic {
		t.Fatalf("expected nostalgic, got %s (ok=%v)", label, ok)
	}
}

func TestTurnTypeCulturalCueWins(t *testing.T) {
	// 同时包含文化与回忆线索时，文化优先。
	got := TurnType("想起以前過年的時候全家一起包餃子", Analyze("想起以前過年的時候全家一起包餃子", ""))
	if got != companion.ConversationCulturalDiscussion {
		t.Fatalf("expected cultural_discussion, got %s", got)
	}
}

func TestTurnTypeMemorySharing(t *testing.T) {
	transcript := "我想起小時候住在鄉下的日子"
	got := TurnType(transcript, Analyze(transcript, ""))
	if got != companion.ConversationMemorySharing {
		t.Fatalf("expected memory_sharing, got %s", got)
	}
}

func TestTurnTypeEmotionalSupport(t *testing.T) {
	transcript := "我最近總是忘記事情，好擔心"
	got := TurnType(transcript, Analyze(transcript, ""))
	if got != companion.ConversationEmotionalSupport {
		t.Fatalf("expected emotional_support, got %s", got)
	}
}

func TestTurnTypeCasualDefault(t *testing.T) {
	got := TurnType("今天吃了稀飯", Analyze("今天吃了稀飯", ""))
	if got != companion.ConversationCasual {
		t.Fatalf("expected casual, got %s", got)
	}
}
