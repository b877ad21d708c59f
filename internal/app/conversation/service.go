package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/i18n"
	"github.com/PabloGalante/career-companion/internal/observability"
	"github.com/PabloGalante/career-companion/internal/transcode"
)

// ToolDispatcher runs a tool the model asked for.
type ToolDispatcher interface {
	Dispatch(ctx context.Context, call domain.ToolCall) (map[string]any, error)
}

// DocumentEncoder turns an upload into a model payload and a displayable data URL.
type DocumentEncoder interface {
	Encode(doc domain.Document) (domain.Blob, string, error)
}

// Service drives one conversation: it owns the message log, the status
// flags and the active model session.
//
// Every public operation is total. Failures end as a message in the log,
// never as a returned error. Operations that are refused because another
// one is in flight report false and change nothing.
type Service struct {
	gateway  domain.ModelGateway
	tools    ToolDispatcher
	log      domain.MessageLog
	sessions domain.SessionRegistry
	speaker  domain.Speaker
	images   DocumentEncoder
	now      func() time.Time
	newID    func(prefix string) domain.MessageID

	mu                    sync.Mutex
	language              domain.LanguageCode
	isLoading             bool
	isTranscribing        bool
	isConversationStarted bool
	speakingID            domain.MessageID
	utterance             uint64

	// publishMu is held across taking a snapshot and delivering it.
	publishMu    sync.Mutex
	listenersMu  sync.Mutex
	listeners    map[int]func(State)
	nextListener int
}

type Option func(*Service)

func WithSpeaker(speaker domain.Speaker) Option {
	return func(s *Service) {
		s.speaker = speaker
	}
}

func WithDocumentEncoder(enc DocumentEncoder) Option {
	return func(s *Service) {
		s.images = enc
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithIDGenerator(newID func(prefix string) domain.MessageID) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

func NewService(
	gateway domain.ModelGateway,
	tools ToolDispatcher,
	log domain.MessageLog,
	sessions domain.SessionRegistry,
	opts ...Option,
) *Service {
	s := &Service{
		gateway:   gateway,
		tools:     tools,
		log:       log,
		sessions:  sessions,
		speaker:   silentSpeaker{},
		images:    transcode.NewImageEncoder(transcode.DefaultMaxImageDimension),
		now:       time.Now,
		newID:     newMessageID,
		language:  i18n.DefaultLanguage,
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start (re)initializes the conversation in language: it drops the current
// session and log, opens a new session and streams the greeting into a
// single AI message. Late results of any earlier session are discarded.
// Start blocks until the greeting has finished or failed.
func (s *Service) Start(ctx context.Context, language domain.LanguageCode) {
	s.mu.Lock()
	s.stopSpeechLocked()
	gen := s.sessions.Begin()
	s.language = language
	s.log.Reset()
	s.isLoading = true
	s.isTranscribing = false
	s.isConversationStarted = false
	s.mu.Unlock()
	s.publish()

	log := observability.LoggerFromContext(ctx).With(
		"language", language,
		"generation", gen,
	)
	log.Info("starting conversation")

	session, err := s.gateway.CreateSession(ctx, language)
	if err != nil {
		s.failStart(ctx, gen, err)
		return
	}
	if !s.sessions.Attach(gen, session) {
		log.Info("session superseded before greeting")
		return
	}

	greetingID := s.newID("ai-intro")
	var greeting strings.Builder
	for fragment, err := range session.SendStream(ctx, greetingPrompt) {
		if err != nil {
			s.failStart(ctx, gen, err)
			return
		}
		greeting.WriteString(fragment)

		msg := s.aiMessage(greetingID, greeting.String())
		if !s.applyIfCurrent(gen, func() { s.log.Upsert(msg) }) {
			log.Info("discarding greeting of superseded session")
			return
		}
	}

	s.applyIfCurrent(gen, func() { s.isLoading = false })
	log.Info("conversation started", "greeting_length", greeting.Len())
}

// Close stops any playing speech.
func (s *Service) Close() {
	s.mu.Lock()
	s.stopSpeechLocked()
	s.mu.Unlock()
	s.publish()
}

func (s *Service) failStart(ctx context.Context, gen domain.Generation, err error) {
	observability.LoggerFromContext(ctx).Error("failed to start conversation",
		"generation", gen,
		"error", err,
	)

	text := textConnectivity
	if errors.Is(err, domain.ErrConfiguration) {
		text = textNotConfigured
	}
	msg := s.errorMessage(text)
	s.applyIfCurrent(gen, func() {
		s.log.Reset(msg)
		s.isLoading = false
	})
}

// applyIfCurrent runs fn under the state lock and publishes, unless gen
// belongs to a session that has since been replaced.
func (s *Service) applyIfCurrent(gen domain.Generation, fn func()) bool {
	s.mu.Lock()
	if !s.sessions.IsCurrent(gen) {
		s.mu.Unlock()
		return false
	}
	fn()
	s.mu.Unlock()
	s.publish()
	return true
}
