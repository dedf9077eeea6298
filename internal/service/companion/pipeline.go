package companion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	analysis "github.com/xiaoyuteam/companion/backend/internal/analysis/emotion"
	model "github.com/xiaoyuteam/companion/backend/internal/model/companion"
	"github.com/xiaoyuteam/companion/backend/internal/store"
)

// State 表示一次对话回合在流水线中的位置。
type State string

const (
	StateIdle             State = "idle"
	StateCapturing        State = "capturing"
	StateTranscribing     State = "transcribing"
	StateAwaitingResponse State = "awaiting_response"
	StateCommitting       State = "committing"
	StateError            State = "error"
)

var (
	// ErrTurnInFlight 表示已有回合在进行中，新请求被直接丢弃而不是排队。
	ErrTurnInFlight = errors.New("turn already in flight")
	// ErrCaptureUnavailable 表示录音设备不可用，调用方应回退到文字输入。
	ErrCaptureUnavailable = errors.New("capture device unavailable")
	// ErrNotCapturing 表示当前没有正在进行的录音。
	ErrNotCapturing = errors.New("no capture in progress")
	// ErrEmptyInput 表示文字输入为空。
	ErrEmptyInput = errors.New("input text is empty")
	// ErrNoPatient 表示会话还没有载入长者档案。
	ErrNoPatient = errors.New("no active patient")
)

// CaptureHandle is an acquired capture device; Stop releases it and returns
// whatever audio was captured. An empty buffer means the recording was
// abandoned.
type CaptureHandle interface {
	Stop() ([]byte, error)
}

// CaptureDevice acquires the recording hardware. Failure surfaces
// synchronously at Start.
type CaptureDevice interface {
	Start(ctx context.Context) (CaptureHandle, error)
}

// Transcriber turns captured audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Reply is what the response-generation collaborator hands back for a turn.
type Reply struct {
	Text             string
	Emotion          model.EmotionAnalysis
	DetectedLanguage string
	CulturalContext  string
}

// Responder produces the companion's reply plus the emotion tag for the turn.
type Responder interface {
	Respond(ctx context.Context, transcript string, patient *model.Patient) (Reply, error)
}

// Pipeline drives one conversation turn at a time:
// Idle → Capturing → Transcribing → AwaitingResponse → Committing → Idle.
// Text input skips straight to AwaitingResponse. Only one turn may be in
// flight; overlapping starts are rejected, never queued, so two records can
// never race to commit.
type Pipeline struct {
	store       *store.Store
	capture     CaptureDevice
	transcriber Transcriber
	responder   Responder
	now         func() time.Time
	newID       func() string

	mu        sync.Mutex
	state     State
	handle    CaptureHandle
	turnStart time.Time
	lastError string
}

// Options 允许注入时钟与 ID 生成器，便于测试控制。
type Options struct {
	Now   func() time.Time
	NewID func() string
}

// NewPipeline wires the pipeline to its collaborators.
func NewPipeline(st *store.Store, capture CaptureDevice, transcriber Transcriber, responder Responder, opts Options) *Pipeline {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Pipeline{
		store:       st,
		capture:     capture,
		transcriber: transcriber,
		responder:   responder,
		now:         now,
		newID:       newID,
		state:       StateIdle,
	}
}

// State returns the pipeline's current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastError 返回上一次失败回合的描述，仅用于界面提示。
func (p *Pipeline) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastError
}

// StartRecording acquires the capture device and moves Idle → Capturing.
// Device failure is recoverable: the pipeline surfaces the error and settles
// back to Idle so the caller can fall back to text input.
func (p *Pipeline) StartRecording(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StateIdle {
		p.mu.Unlock()
		return ErrTurnInFlight
	}
	if p.capture == nil {
		p.state = StateIdle
		p.lastError = "capture device not configured"
		p.mu.Unlock()
		return fmt.Errorf("%w: not configured", ErrCaptureUnavailable)
	}
	p.state = StateCapturing
	p.turnStart = p.now()
	p.mu.Unlock()

	handle, err := p.capture.Start(ctx)
	if err != nil {
		// Error 态在通知调用方后立即回到 Idle，保证文字输入仍然可用。
		p.mu.Lock()
		p.state = StateIdle
		p.lastError = err.Error()
		p.turnStart = time.Time{}
		p.mu.Unlock()
		log.Printf("[pipeline] capture start failed: %v", err)
		return fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}

	p.mu.Lock()
	p.handle = handle
	p.mu.Unlock()
	p.store.SetRecording(true)
	return nil
}

// StopRecording ends the capture and runs the rest of the turn. Stopping
// with zero captured audio is a cancellation: nothing is committed and the
// pipeline returns to Idle with a nil conversation.
func (p *Pipeline) StopRecording(ctx context.Context) (*model.Conversation, error) {
	p.mu.Lock()
	if p.state != StateCapturing || p.handle == nil {
		p.mu.Unlock()
		return nil, ErrNotCapturing
	}
	handle := p.handle
	p.handle = nil
	p.state = StateTranscribing
	p.mu.Unlock()

	p.store.SetRecording(false)

	audio, err := handle.Stop()
	if err != nil {
		p.failTurn(fmt.Errorf("stop capture: %w", err))
		return nil, err
	}
	if len(audio) == 0 {
		// 无声停止视为取消，不产生任何对话记录。
		p.resetTurn()
		return nil, nil
	}

	patient := p.store.Patient()
	if patient == nil {
		err := ErrNoPatient
		p.failTurn(err)
		return nil, err
	}

	transcript, err := p.transcriber.Transcribe(ctx, audio, patient.PrimaryLanguage)
	if err != nil {
		p.failTurn(fmt.Errorf("transcribe: %w", err))
		return nil, err
	}
	if strings.TrimSpace(transcript) == "" {
		// 转写不出内容的录音同样按取消处理。
		p.resetTurn()
		return nil, nil
	}

	p.store.SetCurrentTranscript(transcript)
	return p.respondAndCommit(ctx, patient, transcript)
}

// CancelRecording abandons an in-flight capture without committing anything:
// the device is released, the buffered audio discarded, and the pipeline
// returns to Idle. A no-op unless a capture is in progress.
func (p *Pipeline) CancelRecording() {
	p.mu.Lock()
	if p.state != StateCapturing || p.handle == nil {
		p.mu.Unlock()
		return
	}
	handle := p.handle
	p.handle = nil
	p.mu.Unlock()

	if _, err := handle.Stop(); err != nil {
		log.Printf("[pipeline] cancel capture: %v", err)
	}
	p.store.SetRecording(false)
	p.resetTurn()
}

// SendText runs a text-entry turn, bypassing capture and transcription: the
// input becomes the transcript verbatim apart from stripped leading and
// trailing whitespace; inner spacing is preserved.
func (p *Pipeline) SendText(ctx context.Context, text string) (*model.Conversation, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}

	p.mu.Lock()
	if p.state != StateIdle {
		p.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	p.state = StateAwaitingResponse
	p.turnStart = p.now()
	p.mu.Unlock()

	patient := p.store.Patient()
	if patient == nil {
		err := ErrNoPatient
		p.failTurn(err)
		return nil, err
	}

	p.store.SetCurrentTranscript(trimmed)
	return p.respondAndCommit(ctx, patient, trimmed)
}

// respondAndCommit covers AwaitingResponse → Committing → Idle.
func (p *Pipeline) respondAndCommit(ctx context.Context, patient *model.Patient, transcript string) (*model.Conversation, error) {
	p.setState(StateAwaitingResponse)

	reply, err := p.responder.Respond(ctx, transcript, patient)
	if err != nil {
		p.failTurn(fmt.Errorf("generate response: %w", err))
		return nil, err
	}

	p.setState(StateCommitting)

	tag := reply.Emotion
	if tag.PrimaryEmotion == "" {
		// 分类器没有给出结果时落到中性低置信标签，绝不省略该字段。
		tag = analysis.NeutralDecision().Tag()
	}
	if _, ok := analysis.ParseLabel(tag.PrimaryEmotion); !ok {
		tag = analysis.NeutralDecision().Tag()
	}

	language := reply.DetectedLanguage
	if language == "" {
		language = patient.PrimaryLanguage
	}

	now := p.now()
	duration := 0
	if !p.turnStart.IsZero() && now.After(p.turnStart) {
		duration = int(now.Sub(p.turnStart) / time.Second)
	}

	conv := model.Conversation{
		ID:               p.newID(),
		PatientID:        patient.ID,
		Transcript:       transcript,
		DetectedLanguage: language,
		AIResponse:       reply.Text,
		ConversationType: analysis.TurnType(transcript, analysis.Analyze(transcript, reply.Text)),
		EmotionAnalysis:  tag,
		CulturalContext:  reply.CulturalContext,
		Duration:         duration,
		CreatedDate:      now,
		UpdatedDate:      now,
	}

	p.store.AddConversation(conv)
	p.resetTurn()
	return &conv, nil
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// failTurn abandons the turn without touching the conversation collection.
func (p *Pipeline) failTurn(err error) {
	p.mu.Lock()
	p.state = StateIdle
	p.handle = nil
	p.lastError = err.Error()
	p.turnStart = time.Time{}
	p.mu.Unlock()
	p.store.ClearTurnState()
	log.Printf("[pipeline] turn failed: %v", err)
}

// resetTurn clears transient state and readies the next turn.
func (p *Pipeline) resetTurn() {
	p.mu.Lock()
	p.state = StateIdle
	p.handle = nil
	p.lastError = ""
	p.turnStart = time.Time{}
	p.mu.Unlock()
	p.store.ClearTurnState()
}
