package speech

import (
	"context"
	"errors"
	"math/rand"
)

// ScriptedTranscriber stands in for the real speech-recognition service in
// demo mode: it ignores the audio and picks a transcript from a fixed table.
// The random source is injected so tests stay deterministic.
type ScriptedTranscriber struct {
	rng         *rand.Rand
	transcripts []string
}

var defaultTranscripts = []string{
	"今天天氣真好，讓我想起年輕時的春天",
	"我好想念我的家人",
	"可以播放一些老歌給我聽嗎？",
	"我記得小時候過年的情景",
}

// NewScriptedTranscriber 创建脚本化转写器。
func NewScriptedTranscriber(rng *rand.Rand) *ScriptedTranscriber {
	return &ScriptedTranscriber{rng: rng, transcripts: defaultTranscripts}
}

// Transcribe 返回一条脚本转写。空音频视为调用方的错误。
func (t *ScriptedTranscriber) Transcribe(_ context.Context, audio []byte, _ string) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("empty audio buffer")
	}
	return t.transcripts[t.rng.Intn(len(t.transcripts))], nil
}
