package emotion

import (
	"context"
	"testing"

	analysis "github.com/xiaoyuteam/companion/backend/internal/analysis/emotion"
)

func TestDisabledServiceFallsBackToHeuristic(t *testing.T) {
	svc, err := NewService(context.Background(), nil, Config{Enabled: false})
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	if svc.Enabled() {
		t.Fatal("service must report disabled without a chat model")
	}

	decision := svc.Classify(context.Background(), nil, "我今天好難過", "")
	if decision.Emotion != analysis.Sad {
		t.Fatalf("expected heuristic fallback to tag sad, got %s", decision.Emotion)
	}
}

func TestEnabledFlagRequiresChatModel(t *testing.T) {
	// Enabled=true 但没有模型时仍然应当降级，而不是报错。
	svc, err := NewService(context.Background(), nil, Config{Enabled: true})
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	if svc.Enabled() {
		t.Fatal("service must stay disabled without a chat model")
	}
}

func TestParseClassifierOutputExtractsJSON(t *testing.T) {
	payload, err := parseClassifierOutput("好的，以下是结果：\n```json\n{\"emotion\":\"nostalgic\",\"confidence\":0.82,\"keywords\":[\"想起\",\"小時候\"]}\n```")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if payload.Emotion != "nostalgic" {
		t.Fatalf("unexpected emotion: %q", payload.Emotion)
	}
	if payload.Confidence < 0.81 || payload.Confidence > 0.83 {
		t.Fatalf("unexpected confidence: %f", payload.Confidence)
	}
	if len(payload.Keywords) != 2 {
		t.Fatalf("unexpected keywords: %v", payload.Keywords)
	}
}

func TestParseClassifierOutputRejectsNonJSON(t *testing.T) {
	if _, err := parseClassifierOutput("這不是 JSON"); err == nil {
		t.Fatal("expected error for non-json output")
	}
}
