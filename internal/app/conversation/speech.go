package conversation

import (
	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/observability"
)

// ToggleSpeech stops playback when id is already speaking; otherwise it
// stops whatever plays and reads text aloud as message id.
func (s *Service) ToggleSpeech(id domain.MessageID, text string) {
	s.mu.Lock()
	if id != "" && s.speakingID == id {
		s.stopSpeechLocked()
		s.mu.Unlock()
		s.publish()
		return
	}

	s.stopSpeechLocked()
	token := s.utterance
	s.speakingID = id
	s.speaker.Speak(text, func(err error) {
		s.mu.Lock()
		if s.utterance != token {
			s.mu.Unlock()
			return
		}
		if err != nil {
			observability.WithFields("message_id", id).Warn("speech playback failed", "error", err)
		}
		s.speakingID = ""
		s.mu.Unlock()
		s.publish()
	})
	s.mu.Unlock()
	s.publish()
}

// stopSpeechLocked cancels playback and invalidates pending completions.
func (s *Service) stopSpeechLocked() {
	s.speaker.Cancel()
	s.speakingID = ""
	s.utterance++
}

type silentSpeaker struct{}

func (silentSpeaker) Speak(_ string, done func(error)) {
	go done(nil)
}

func (silentSpeaker) Cancel() {}
