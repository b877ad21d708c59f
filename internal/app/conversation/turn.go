package conversation

import (
	"context"
	"strings"

	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/observability"
)

// SendText runs one user turn. It is refused while there is no session or
// while another turn, document or transcription is in flight.
func (s *Service) SendText(ctx context.Context, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	s.mu.Lock()
	session, gen := s.sessions.Current()
	if session == nil || s.isLoading || s.isTranscribing {
		s.mu.Unlock()
		return false
	}
	s.beginTurnLocked(text)
	s.mu.Unlock()
	s.publish()

	s.runTurn(ctx, gen, session, text)
	return true
}

// beginTurnLocked performs the optimistic part of a turn: speech stops,
// old quick replies go away and the user's message shows immediately.
func (s *Service) beginTurnLocked(text string) {
	s.stopSpeechLocked()
	s.isConversationStarted = true
	s.log.ClearQuickReplies()
	s.log.Append(s.userMessage(text))
	s.isLoading = true
}

// runTurn sends text and, when the model asks for a tool, runs it and sends
// the result back once. At most one AI message is appended.
func (s *Service) runTurn(ctx context.Context, gen domain.Generation, session domain.ChatSession, text string) {
	log := observability.LoggerFromContext(ctx).With("generation", gen)

	reply, err := session.Send(ctx, domain.Turn{Text: text})
	if err != nil {
		s.failTurn(ctx, gen, textTurnError, err)
		return
	}

	toolCalled := false
	if call := reply.ToolCall; call != nil {
		toolCalled = true
		log.Info("model requested tool", "tool", call.Name)

		result, err := s.tools.Dispatch(ctx, *call)
		if err != nil {
			s.failTurn(ctx, gen, textTurnError, err)
			return
		}

		reply, err = session.Send(ctx, domain.Turn{
			ToolResult: &domain.ToolResult{Name: call.Name, Response: result},
		})
		if err != nil {
			s.failTurn(ctx, gen, textTurnError, err)
			return
		}
		if reply.ToolCall != nil {
			log.Warn("ignoring tool call after tool result", "tool", reply.ToolCall.Name)
		}
	}

	var msg *domain.Message
	switch {
	case strings.TrimSpace(reply.Text) != "":
		m := s.aiMessage(s.newID("ai"), reply.Text)
		msg = &m
	case !toolCalled:
		m := s.aiMessage(s.newID("ai"), textFallback)
		msg = &m
	default:
		log.Warn("model returned no text after tool result")
	}

	s.finishTurn(gen, msg)
}

func (s *Service) finishTurn(gen domain.Generation, msg *domain.Message) {
	s.applyIfCurrent(gen, func() {
		if msg != nil {
			s.log.Append(*msg)
		}
		s.isLoading = false
	})
}

func (s *Service) failTurn(ctx context.Context, gen domain.Generation, text string, err error) {
	observability.LoggerFromContext(ctx).Error("turn failed",
		"generation", gen,
		"error", err,
	)
	msg := s.errorMessage(text)
	s.finishTurn(gen, &msg)
}
