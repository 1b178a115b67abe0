package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"backend/llm"
)

// Message is one transcript turn.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// session holds one conversation's transcript. The mutex serializes
// concurrent appends for the same session id.
type session struct {
	mu       sync.Mutex
	messages []Message
}

func (s *session) append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *session) history() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Manager routes inbound messages to intent-specific handlers and keeps
// per-session transcripts for the lifetime of the process.
type Manager struct {
	llm      llm.Client
	sessions *cache.Cache
	logger   *slog.Logger

	mu sync.Mutex // guards session creation
}

func NewManager(client llm.Client, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		llm:      client,
		sessions: cache.New(cache.NoExpiration, cache.NoExpiration),
		logger:   logger,
	}
}

func (m *Manager) session(id string) *session {
	if cached, ok := m.sessions.Get(id); ok {
		return cached.(*session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cached, ok := m.sessions.Get(id); ok {
		return cached.(*session)
	}
	s := &session{}
	m.sessions.Set(id, s, cache.NoExpiration)
	return s
}

// Process appends the user turn, classifies the message's intent with a
// single generative call, dispatches to the matching handler, appends the
// assistant turn, and returns the assistant text. Generative failures are
// not caught here; they propagate to the boundary.
func (m *Manager) Process(ctx context.Context, sessionID, message string) (string, error) {
	s := m.session(sessionID)
	s.append("user", message)

	intentPrompt := fmt.Sprintf(`Analyze the following message and determine its main intent:
Message: %s

Answer with exactly one word among:
- PROGRAM: request to generate or modify a travel program
- INFO: request for information about a destination or activity
- BOOKING: booking request
- OTHER: any other kind of request`, message)

	raw, err := m.llm.Generate(ctx, intentPrompt, "")
	if err != nil {
		return "", err
	}
	intent := ClassifyIntent(raw)
	m.logger.Debug("message classified", "session", sessionID, "intent", string(intent))

	response, err := m.dispatch(ctx, intent, message)
	if err != nil {
		return "", err
	}

	s.append("assistant", response)
	return response, nil
}

func (m *Manager) dispatch(ctx context.Context, intent Intent, message string) (string, error) {
	switch intent {
	case IntentProgram:
		return m.handleProgram(ctx, message)
	case IntentInfo:
		return m.handleInfo(ctx, message)
	case IntentBooking:
		return m.handleBooking(ctx, message)
	default:
		return m.handleGeneral(ctx, message)
	}
}

func (m *Manager) handleProgram(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(`As a travel expert, answer the following request about a travel program:
%s

If the request needs changes to the program, explain the proposed changes.
If it is a new request, propose a suitable program structure.`, message)
	return m.llm.Generate(ctx, prompt, "")
}

func (m *Manager) handleInfo(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(`As a travel expert, provide detailed information about:
%s

Include practical details, tips and recommendations.`, message)
	return m.llm.Generate(ctx, prompt, "")
}

func (m *Manager) handleBooking(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(`As a travel expert, explain the booking process for:
%s

Provide clear steps and practical advice.`, message)
	return m.llm.Generate(ctx, prompt, "")
}

func (m *Manager) handleGeneral(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(`As a travel expert, answer professionally and helpfully:
%s`, message)
	return m.llm.Generate(ctx, prompt, "")
}

// History returns a copy of a session's transcript; unknown sessions yield
// an empty list.
func (m *Manager) History(sessionID string) []Message {
	if cached, ok := m.sessions.Get(sessionID); ok {
		return cached.(*session).history()
	}
	return []Message{}
}
