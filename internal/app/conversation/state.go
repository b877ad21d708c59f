package conversation

import "github.com/PabloGalante/career-companion/internal/domain"

// State is a full snapshot of the conversation as the presentation layer sees it.
type State struct {
	Language              domain.LanguageCode
	Messages              []domain.Message
	IsLoading             bool
	IsTranscribing        bool
	IsConversationStarted bool
	SpeakingMessageID     domain.MessageID
}

// ShowTypingIndicator reports whether the assistant is visibly working on a reply.
func (st State) ShowTypingIndicator() bool {
	return st.IsLoading && !st.IsTranscribing && st.IsConversationStarted
}

// ShowStarters reports whether conversation starters should be offered.
func (st State) ShowStarters() bool {
	return !st.IsConversationStarted && !st.IsLoading && len(st.Messages) > 0
}

func (st State) InputDisabled() bool {
	return st.IsLoading || st.IsTranscribing
}

// LastQuickReplies returns the options of the latest AI message, if any.
func (st State) LastQuickReplies() []string {
	for i := len(st.Messages) - 1; i >= 0; i-- {
		if st.Messages[i].Sender == domain.SenderAI {
			return st.Messages[i].QuickReplies
		}
	}
	return nil
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change, must not block and must
// not call back into operations that change state.
func (s *Service) Subscribe(fn func(State)) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

// State returns the current snapshot.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Message looks up one message by id.
func (s *Service) Message(id domain.MessageID) (domain.Message, bool) {
	return s.log.Get(id)
}

func (s *Service) snapshotLocked() State {
	return State{
		Language:              s.language,
		Messages:              s.log.List(),
		IsLoading:             s.isLoading,
		IsTranscribing:        s.isTranscribing,
		IsConversationStarted: s.isConversationStarted,
		SpeakingMessageID:     s.speakingID,
	}
}

func (s *Service) publish() {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	state := s.State()

	s.listenersMu.Lock()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
