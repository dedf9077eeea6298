package speech

import (
	"context"
	"errors"
	"sync"

	pipeline "github.com/xiaoyuteam/companion/backend/internal/service/companion"
)

var (
	// ErrDeviceBusy 表示已有录音会话占用设备。
	ErrDeviceBusy = errors.New("capture device busy")
	// ErrNoActiveCapture 表示没有正在进行的录音会话。
	ErrNoActiveCapture = errors.New("no active capture session")
)

// maxCaptureBytes caps one turn's audio at 32MB, matching the upload limit
// the old multipart endpoint enforced.
const maxCaptureBytes = 32 << 20

// BufferDevice is the capture collaborator backed by the websocket audio
// channel: the frontend records with MediaRecorder and streams chunks up,
// the device buffers them until the turn stops.
type BufferDevice struct {
	mu     sync.Mutex
	active *BufferSession
}

// NewBufferDevice 创建音频缓冲设备。
func NewBufferDevice() *BufferDevice {
	return &BufferDevice{}
}

// Start acquires the device. Only one session may exist at a time.
func (d *BufferDevice) Start(_ context.Context) (pipeline.CaptureHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active != nil {
		return nil, ErrDeviceBusy
	}
	session := &BufferSession{device: d}
	d.active = session
	return session, nil
}

// Push appends an audio chunk to the active session.
func (d *BufferDevice) Push(chunk []byte) error {
	d.mu.Lock()
	session := d.active
	d.mu.Unlock()
	if session == nil {
		return ErrNoActiveCapture
	}
	return session.push(chunk)
}

func (d *BufferDevice) release(session *BufferSession) {
	d.mu.Lock()
	if d.active == session {
		d.active = nil
	}
	d.mu.Unlock()
}

// BufferSession buffers one turn's audio.
type BufferSession struct {
	mu     sync.Mutex
	device *BufferDevice
	buf    []byte
	closed bool
}

func (s *BufferSession) push(chunk []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNoActiveCapture
	}
	if len(s.buf)+len(chunk) > maxCaptureBytes {
		return errors.New("capture buffer overflow")
	}
	s.buf = append(s.buf, chunk...)
	return nil
}

// Stop releases the device and hands back whatever was captured. An empty
// buffer tells the pipeline the recording was abandoned.
func (s *BufferSession) Stop() ([]byte, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrNoActiveCapture
	}
	s.closed = true
	buf := s.buf
	s.buf = nil
	s.mu.Unlock()

	s.device.release(s)
	return buf, nil
}
