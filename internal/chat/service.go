package chat

import (
	"context"
	"errors"
	"strings"

	"faqhub.org/internal/faq"
	"faqhub.org/internal/obs"
)

// Reply sources, reported to the client alongside the answer text.
const (
	SourceFAQ      = "faq"
	SourceOpenAI   = "openai"
	SourceFallback = "fallback"
	SourceNone     = "none"
)

const (
	fallbackReply = "AI is unavailable. We'll get back to you."
	unknownReply  = "Sorry, I don't know the answer to that yet."
)

// ErrEmptyMessage reports a chat request without a message.
var ErrEmptyMessage = errors.New("chat: message is required")

// Recorder captures questions no FAQ could answer.
type Recorder interface {
	Append(line string) error
}

// Reply is a chat answer and where it came from.
type Reply struct {
	Text   string `json:"reply"`
	Source string `json:"source"`
}

// Service answers visitor messages: FAQ match first, then the optional
// language-model fallback, recording everything unanswered along the way.
type Service struct {
	faqs       faq.Store
	unanswered Recorder
	model      Responder // nil when no fallback is configured
}

// NewService wires the chat pipeline. model may be nil.
func NewService(faqs faq.Store, unanswered Recorder, model Responder) (*Service, error) {
	if faqs == nil {
		return nil, errors.New("chat: faq store is required")
	}
	if unanswered == nil {
		return nil, errors.New("chat: unanswered recorder is required")
	}
	return &Service{faqs: faqs, unanswered: unanswered, model: model}, nil
}

// Answer runs the pipeline for one message. FAQs are re-read on every call
// so admin edits apply immediately. Model failures degrade to a canned
// reply; they never surface as request errors.
func (s *Service) Answer(ctx context.Context, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	faqs, err := s.faqs.List(ctx)
	if err != nil {
		faqs = nil
	}
	if answer, ok := faq.Match(faqs, message); ok {
		obs.ObserveChatReply(SourceFAQ)
		return Reply{Text: answer, Source: SourceFAQ}, nil
	}

	if err := s.unanswered.Append(message); err != nil {
		obs.Event("warn", "unanswered log append failed", map[string]any{"error": err.Error()})
	}

	if s.model == nil {
		obs.ObserveChatReply(SourceNone)
		return Reply{Text: unknownReply, Source: SourceNone}, nil
	}

	answer, err := s.model.Respond(ctx, message)
	if err != nil {
		obs.Event("warn", "model fallback failed", map[string]any{"error": err.Error()})
		obs.ObserveChatReply(SourceFallback)
		return Reply{Text: fallbackReply, Source: SourceFallback}, nil
	}
	obs.ObserveChatReply(SourceOpenAI)
	return Reply{Text: answer, Source: SourceOpenAI}, nil
}
