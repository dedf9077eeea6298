package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/xiaoyuteam/companion/backend/internal/analysis/emotion"
	"github.com/xiaoyuteam/companion/backend/internal/config"
	companion "github.com/xiaoyuteam/companion/backend/internal/model/companion"
	pipeline "github.com/xiaoyuteam/companion/backend/internal/service/companion"
	emotionservice "github.com/xiaoyuteam/companion/backend/internal/service/emotion"
	"github.com/xiaoyuteam/companion/backend/internal/store"
)

// Service 是接入 Ark 大模型的回复生成器，实现流水线的 Responder 契约。
type Service struct {
	chatModel  model.ChatModel
	store      *store.Store
	emotionSvc *emotionservice.Service
	cfg        config.AIConfig
	chain      compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the LLM-backed responder.
func NewService(ctx context.Context, st *store.Store, emotionSvc *emotionservice.Service, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel:  chatModel,
		store:      st,
		emotionSvc: emotionSvc,
		cfg:        cfg,
		chain:      runnable,
	}, nil
}

// GetChatModel 返回底层的聊天模型，供情绪分类器复用。
func (s *Service) GetChatModel() model.ChatModel {
	return s.chatModel
}

// SetEmotionService 注入情绪分类器。分类器依赖本服务的聊天模型，
// 所以只能在构造之后再接上。
func (s *Service) SetEmotionService(svc *emotionservice.Service) {
	s.emotionSvc = svc
}

// Respond generates the companion's reply for one turn and attaches the
// emotion tag. Satisfies the pipeline's Responder contract.
func (s *Service) Respond(ctx context.Context, transcript string, patient *companion.Patient) (pipeline.Reply, error) {
	input := map[string]any{
		"system":  BuildSystemPrompt(patient),
		"history": s.buildHistoryMessages(),
		"query":   transcript,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return pipeline.Reply{}, fmt.Errorf("failed to run AI chain: %w", err)
	}

	log.Printf("[ai] generated reply for patient=%s, length=%d", patient.ID, len(response.Content))

	decision := s.classify(ctx, patient, transcript, response.Content)

	return pipeline.Reply{
		Text:             response.Content,
		Emotion:          decision.Tag(),
		DetectedLanguage: patient.PrimaryLanguage,
	}, nil
}

func (s *Service) classify(ctx context.Context, patient *companion.Patient, transcript, reply string) analysis.Decision {
	if s.emotionSvc != nil {
		return s.emotionSvc.Classify(ctx, patient, transcript, reply)
	}
	return analysis.Analyze(transcript, reply)
}

// buildHistoryMessages 把最近的对话回合转成模型上下文，最新的排在最后。
func (s *Service) buildHistoryMessages() []*schema.Message {
	const historyLimit = 5

	conversations := s.store.Conversations()
	if len(conversations) == 0 {
		return nil
	}
	if len(conversations) > historyLimit {
		conversations = conversations[:historyLimit]
	}

	// 集合按最新在前存储，送给模型前要倒回时间顺序。
	history := make([]*schema.Message, 0, len(conversations)*2)
	for i := len(conversations) - 1; i >= 0; i-- {
		conv := conversations[i]
		history = append(history, schema.UserMessage(conv.Transcript))
		history = append(history, schema.AssistantMessage(conv.AIResponse, nil))
	}
	return history
}
