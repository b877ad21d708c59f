package conversation

import (
	"context"
	"errors"
	"strings"

	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/observability"
	"github.com/PabloGalante/career-companion/internal/transcode"
)

// SubmitAudio transcribes a voice recording and, when that yields text,
// runs it as an ordinary turn.
func (s *Service) SubmitAudio(ctx context.Context, clip domain.AudioClip) bool {
	s.mu.Lock()
	if s.isLoading || s.isTranscribing {
		s.mu.Unlock()
		return false
	}
	_, gen := s.sessions.Current()
	s.stopSpeechLocked()
	s.log.ClearQuickReplies()
	s.isTranscribing = true
	s.mu.Unlock()
	s.publish()

	log := observability.LoggerFromContext(ctx).With(
		"generation", gen,
		"mime_type", clip.MIMEType,
		"bytes", len(clip.Data),
	)

	blob, err := transcode.EncodeAudio(clip)
	if errors.Is(err, transcode.ErrEmptyAudio) {
		s.finishTranscription(gen, s.aiMessage(s.newID("ai"), textAudioUnclear))
		return true
	}
	if err != nil {
		log.Error("failed to encode audio", "error", err)
		s.finishTranscription(gen, s.errorMessage(textAudioError))
		return true
	}

	text, err := s.gateway.TranscribeAudio(ctx, blob)
	switch {
	case errors.Is(err, domain.ErrEmptyResult):
		log.Info("transcription was empty")
		s.finishTranscription(gen, s.aiMessage(s.newID("ai"), textAudioUnclear))
		return true
	case err != nil:
		log.Error("failed to transcribe audio", "error", err)
		s.finishTranscription(gen, s.errorMessage(textAudioError))
		return true
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.finishTranscription(gen, s.aiMessage(s.newID("ai"), textAudioUnclear))
		return true
	}

	// Hand over from transcribing to loading in one step so the two flags
	// are never set together.
	s.mu.Lock()
	if !s.sessions.IsCurrent(gen) {
		s.mu.Unlock()
		return true
	}
	s.isTranscribing = false
	session, _ := s.sessions.Current()
	if session == nil || s.isLoading {
		s.mu.Unlock()
		s.publish()
		log.Warn("no session for transcribed turn")
		return true
	}
	s.beginTurnLocked(text)
	s.mu.Unlock()
	s.publish()

	s.runTurn(ctx, gen, session, text)
	return true
}

func (s *Service) finishTranscription(gen domain.Generation, msg domain.Message) {
	s.applyIfCurrent(gen, func() {
		s.log.Append(msg)
		s.isTranscribing = false
	})
}

// SubmitDocument shows the uploaded CV in the log and appends the model's
// analysis of it. It is refused while a turn or transcription is in flight.
func (s *Service) SubmitDocument(ctx context.Context, doc domain.Document) bool {
	s.mu.Lock()
	if s.isLoading || s.isTranscribing {
		s.mu.Unlock()
		return false
	}
	_, gen := s.sessions.Current()
	s.stopSpeechLocked()
	s.log.ClearQuickReplies()
	s.isLoading = true
	s.mu.Unlock()
	s.publish()

	log := observability.LoggerFromContext(ctx).With(
		"generation", gen,
		"file_name", doc.FileName,
		"bytes", len(doc.Data),
	)

	blob, dataURL, err := s.images.Encode(doc)
	if err != nil {
		s.failTurn(ctx, gen, textDocumentError, err)
		return true
	}

	upload := s.documentMessage(doc.FileName, dataURL)
	if !s.applyIfCurrent(gen, func() {
		s.isConversationStarted = true
		s.log.Append(upload)
	}) {
		return true
	}

	text, err := s.gateway.AnalyzeDocument(ctx, blob)
	if err != nil {
		s.failTurn(ctx, gen, textDocumentError, err)
		return true
	}
	if strings.TrimSpace(text) == "" {
		log.Warn("document analysis returned no text")
		text = textFallback
	}

	msg := s.aiMessage(s.newID("ai"), text)
	s.finishTurn(gen, &msg)
	log.Info("document analyzed")
	return true
}
