package ai

import (
	"context"
	"math/rand"

	analysis "github.com/xiaoyuteam/companion/backend/internal/analysis/emotion"
	companion "github.com/xiaoyuteam/companion/backend/internal/model/companion"
	pipeline "github.com/xiaoyuteam/companion/backend/internal/service/companion"
)

// ScriptedResponder answers from a fixed table, for demo mode and tests when
// no Ark credentials are configured. The random source is injected so tests
// can pin the choice.
type ScriptedResponder struct {
	rng     *rand.Rand
	replies []string
}

var defaultReplies = []string{
	"這真是美好的回憶呢！春天的確是個充滿希望的季節。您最喜歡春天的什麼呢？",
	"家人的陪伴總是最溫暖的。要不要跟我分享一些和家人的美好回憶？",
	"當然可以！我來為您播放一些經典老歌。您有特別喜歡的歌手嗎？",
	"過年真是充滿歡樂的時光！您還記得最喜歡的年菜是什麼嗎？",
}

// NewScriptedResponder 创建脚本化回复器。
func NewScriptedResponder(rng *rand.Rand) *ScriptedResponder {
	return &ScriptedResponder{rng: rng, replies: defaultReplies}
}

// Respond picks a canned reply and tags it with the keyword heuristic.
func (r *ScriptedResponder) Respond(_ context.Context, transcript string, patient *companion.Patient) (pipeline.Reply, error) {
	text := r.replies[r.rng.Intn(len(r.replies))]
	decision := analysis.Analyze(transcript, text)

	language := ""
	if patient != nil {
		language = patient.PrimaryLanguage
	}

	return pipeline.Reply{
		Text:             text,
		Emotion:          decision.Tag(),
		DetectedLanguage: language,
	}, nil
}
