package conversation

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PabloGalante/career-companion/internal/adapters/storage/memory"
	"github.com/PabloGalante/career-companion/internal/domain"
)

type fakeReply struct {
	reply domain.Reply
	err   error
	// entered is closed when Send picks this reply; Send then waits for release.
	entered chan struct{}
	release chan struct{}
}

type fakeSession struct {
	fragments []string
	streamErr error
	started   chan struct{}
	release   chan struct{}

	mu      sync.Mutex
	replies []fakeReply
	turns   []domain.Turn
}

func (f *fakeSession) SendStream(context.Context, string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if f.started != nil {
			close(f.started)
		}
		if f.release != nil {
			<-f.release
		}
		for _, fragment := range f.fragments {
			if !yield(fragment, nil) {
				return
			}
		}
		if f.streamErr != nil {
			yield("", f.streamErr)
		}
	}
}

func (f *fakeSession) Send(_ context.Context, turn domain.Turn) (domain.Reply, error) {
	f.mu.Lock()
	f.turns = append(f.turns, turn)
	if len(f.replies) == 0 {
		f.mu.Unlock()
		return domain.Reply{}, errors.New("unexpected send")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	f.mu.Unlock()

	if r.entered != nil {
		close(r.entered)
	}
	if r.release != nil {
		<-r.release
	}
	return r.reply, r.err
}

func (f *fakeSession) sentTurns() []domain.Turn {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Turn(nil), f.turns...)
}

type fakeGateway struct {
	mu        sync.Mutex
	sessions  map[domain.LanguageCode]*fakeSession
	createErr error

	transcript    string
	transcribeErr error
	// transcribeEntered is closed when TranscribeAudio starts; it then waits for transcribeRelease.
	transcribeEntered chan struct{}
	transcribeRelease chan struct{}

	analysis     string
	analyzeErr   error
	analyzeCalls atomic.Int32
}

func (g *fakeGateway) CreateSession(_ context.Context, language domain.LanguageCode) (domain.ChatSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	session, ok := g.sessions[language]
	if !ok {
		return nil, fmt.Errorf("no session scripted for %q", language)
	}
	return session, nil
}

func (g *fakeGateway) TranscribeAudio(context.Context, domain.Blob) (string, error) {
	if g.transcribeEntered != nil {
		close(g.transcribeEntered)
	}
	if g.transcribeRelease != nil {
		<-g.transcribeRelease
	}
	return g.transcript, g.transcribeErr
}

func (g *fakeGateway) AnalyzeDocument(context.Context, domain.Blob) (string, error) {
	g.analyzeCalls.Add(1)
	return g.analysis, g.analyzeErr
}

type fakeDispatcher struct {
	calls  []domain.ToolCall
	result map[string]any
	err    error
}

func (d *fakeDispatcher) Dispatch(_ context.Context, call domain.ToolCall) (map[string]any, error) {
	d.calls = append(d.calls, call)
	return d.result, d.err
}

type fakeSpeaker struct {
	mu      sync.Mutex
	spoken  []string
	dones   []func(error)
	cancels int
}

func (f *fakeSpeaker) Speak(text string, done func(error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, text)
	f.dones = append(f.dones, done)
}

func (f *fakeSpeaker) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
}

// finish reports the end of utterance i, as the playback goroutine would.
func (f *fakeSpeaker) finish(i int, err error) {
	f.mu.Lock()
	done := f.dones[i]
	f.mu.Unlock()
	done(err)
}

type fakeEncoder struct {
	err error
}

func (e fakeEncoder) Encode(doc domain.Document) (domain.Blob, string, error) {
	if e.err != nil {
		return domain.Blob{}, "", e.err
	}
	return domain.Blob{Data: doc.Data, MIMEType: doc.MIMEType}, "data:" + doc.MIMEType + ";base64,AAA=", nil
}

type harness struct {
	svc        *Service
	gateway    *fakeGateway
	dispatcher *fakeDispatcher
	speaker    *fakeSpeaker

	mu        sync.Mutex
	snapshots []State
}

func newHarness(t *testing.T, sessions map[domain.LanguageCode]*fakeSession) *harness {
	t.Helper()

	h := &harness{
		gateway:    &fakeGateway{sessions: sessions},
		dispatcher: &fakeDispatcher{result: map[string]any{"jobs": []domain.JobListing{}}},
		speaker:    &fakeSpeaker{},
	}

	var seq atomic.Int64
	h.svc = NewService(
		h.gateway,
		h.dispatcher,
		memory.NewMessageLog(),
		memory.NewSessionRegistry(),
		WithSpeaker(h.speaker),
		WithDocumentEncoder(fakeEncoder{}),
		WithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func(prefix string) domain.MessageID {
			return domain.MessageID(fmt.Sprintf("%s-%d", prefix, seq.Add(1)))
		}),
	)

	unsubscribe := h.svc.Subscribe(func(st State) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.snapshots = append(h.snapshots, st)
	})
	t.Cleanup(unsubscribe)
	return h
}

func (h *harness) states() []State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]State(nil), h.snapshots...)
}

func greetingSession(extra ...fakeReply) *fakeSession {
	return &fakeSession{
		fragments: []string{"Hello! ", "How can I help? ", "[Find a job] [Talk]"},
		replies:   extra,
	}
}

func textReply(text string) fakeReply {
	return fakeReply{reply: domain.Reply{Text: text}}
}

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting")
	}
}
