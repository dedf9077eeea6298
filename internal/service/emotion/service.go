package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/xiaoyuteam/companion/backend/internal/analysis/emotion"
	companion "github.com/xiaoyuteam/companion/backend/internal/model/companion"
)

// Config 控制情绪分析服务的行为。
type Config struct {
	Enabled bool
}

// Service 使用大模型识别长者话语的情绪，失败或未启用时回退到关键词规则。
// 无论哪条路径，结果都带完整的 {primary_emotion, confidence, sentiment}。
type Service struct {
	enabled    bool
	classifier compose.Runnable[map[string]any, *schema.Message]
	fallback   func(user, assistant string) analysis.Decision
}

// NewService 创建情绪分析服务。chatModel 可重用现有的大模型实例。
func NewService(ctx context.Context, chatModel model.ChatModel, cfg Config) (*Service, error) {
	svc := &Service{
		enabled:  cfg.Enabled && chatModel != nil,
		fallback: analysis.Analyze,
	}

	if !svc.enabled {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(classifierUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile emotion classifier chain: %w", err)
	}

	svc.classifier = runnable
	return svc, nil
}

// Enabled 返回大模型分类器是否可用。
func (s *Service) Enabled() bool {
	return s != nil && s.enabled && s.classifier != nil
}

// Classify 推断长者此刻的情绪。userMessage 是转写后的话语，assistantReply
// 可以为空（回复尚未生成时）。未知标签一律静默回退，不向调用方报错。
func (s *Service) Classify(ctx context.Context, patient *companion.Patient, userMessage, assistantReply string) analysis.Decision {
	if !s.Enabled() {
		return s.fallback(userMessage, assistantReply)
	}

	input := map[string]any{
		"patient":         summarizePatient(patient),
		"user_message":    strings.TrimSpace(userMessage),
		"assistant_reply": strings.TrimSpace(assistantReply),
	}

	msg, err := s.classifier.Invoke(ctx, input)
	if err != nil {
		log.Printf("[emotion] classifier invoke failed, use fallback: %v", err)
		return s.fallback(userMessage, assistantReply)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return s.fallback(userMessage, assistantReply)
	}

	payload, err := parseClassifierOutput(msg.Content)
	if err != nil {
		log.Printf("[emotion] classifier output parse failed, use fallback: %v", err)
		return s.fallback(userMessage, assistantReply)
	}

	label, ok := analysis.ParseLabel(payload.Emotion)
	if !ok {
		return s.fallback(userMessage, assistantReply)
	}

	confidence := float64(payload.Confidence)
	if confidence <= 0 {
		confidence = 0.6
	}
	if confidence > 1 {
		confidence = 1
	}

	return analysis.Decision{
		Emotion:    label,
		Confidence: confidence,
		Sentiment:  analysis.SentimentFor(label),
		Keywords:   cleanKeywords(payload.Keywords),
	}
}

// parseClassifierOutput 解析大模型返回的 JSON。
func parseClassifierOutput(content string) (*classifierPayload, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &classifierPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func summarizePatient(p *companion.Patient) string {
	if p == nil {
		return "未提供长者档案。"
	}
	sections := []string{
		fmt.Sprintf("称呼:%s", strings.TrimSpace(p.Name)),
		fmt.Sprintf("母语:%s", strings.TrimSpace(p.PrimaryLanguage)),
		fmt.Sprintf("照护阶段:%s", string(p.CareStage)),
	}
	if len(p.Interests) > 0 {
		sections = append(sections, fmt.Sprintf("兴趣:%s", strings.Join(p.Interests, "、")))
	}
	return strings.Join(sections, " | ")
}

func cleanKeywords(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, kw := range raw {
		if trimmed := strings.TrimSpace(kw); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type classifierPayload struct {
	Emotion    string   `json:"emotion"`
	Confidence float32  `json:"confidence"`
	Keywords   []string `json:"keywords"`
	Reason     string   `json:"reason"`
}

const classifierSystemPrompt = "你是一名面向失智症长者的情绪分析师。请阅读长者档案、长者的话语以及（可选的）陪伴者回复，判断长者此刻的情绪。\n输出要求：只返回一个 JSON 对象，字段如下：emotion (必须是 neutral/happy/sad/nostalgic/anxious/confused/excited/grateful/calm 之一)、confidence (0~1 之间的小数)、keywords (话语中体现情绪的词语数组，可为空)、reason (简要理由)。不得输出多余文本。"

const classifierUserPrompt = "长者档案：\n{patient}\n\n长者的话：\n{user_message}\n\n陪伴者回复（可能为空）：\n{assistant_reply}\n\n请基于这些信息给出 JSON。"
