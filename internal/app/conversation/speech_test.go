package conversation

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/observability"
)

func TestToggleSpeechTwiceStops(t *testing.T) {
	h := newHarness(t, nil)

	h.svc.ToggleSpeech("ai-1", "Hello")
	assert.Equal(t, domain.MessageID("ai-1"), h.svc.State().SpeakingMessageID)

	h.svc.ToggleSpeech("ai-1", "Hello")
	assert.Empty(t, h.svc.State().SpeakingMessageID)
	assert.Len(t, h.speaker.spoken, 1)
}

func TestToggleSpeechSwitchesMessage(t *testing.T) {
	h := newHarness(t, nil)

	h.svc.ToggleSpeech("ai-1", "first")
	h.svc.ToggleSpeech("ai-2", "second")
	assert.Equal(t, domain.MessageID("ai-2"), h.svc.State().SpeakingMessageID)

	// The cancelled utterance reporting late must not clear the new one.
	h.speaker.finish(0, errors.New("interrupted"))
	assert.Equal(t, domain.MessageID("ai-2"), h.svc.State().SpeakingMessageID)

	h.speaker.finish(1, nil)
	assert.Empty(t, h.svc.State().SpeakingMessageID)
	assert.Equal(t, []string{"first", "second"}, h.speaker.spoken)
}

func TestPlaybackErrorClearsSpeakingID(t *testing.T) {
	h := newHarness(t, nil)

	h.svc.ToggleSpeech("ai-1", "Hello")
	h.speaker.finish(0, errors.New("no audio device"))

	assert.Empty(t, h.svc.State().SpeakingMessageID)
}

func TestNewTurnCancelsSpeech(t *testing.T) {
	h := newHarness(t, map[domain.LanguageCode]*fakeSession{"en": greetingSession(textReply("ok"))})
	h.svc.Start(context.Background(), "en")
	greeting := h.svc.State().Messages[0]

	h.svc.ToggleSpeech(greeting.ID, greeting.Text)
	cancelsBefore := h.speaker.cancels
	require.True(t, h.svc.SendText(context.Background(), "hi"))

	assert.Empty(t, h.svc.State().SpeakingMessageID)
	assert.Greater(t, h.speaker.cancels, cancelsBefore)
}

func TestSubscribersEndOnLatestSnapshot(t *testing.T) {
	h := newHarness(t, nil)

	blocked := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	var last State
	unsubscribe := h.svc.Subscribe(func(st State) {
		if st.SpeakingMessageID == "ai-1" {
			once.Do(func() {
				close(blocked)
				<-release
			})
		}
		mu.Lock()
		defer mu.Unlock()
		last = st
	})
	defer unsubscribe()

	toggled := make(chan struct{})
	go func() {
		defer close(toggled)
		h.svc.ToggleSpeech("ai-1", "Hello")
	}()
	waitClosed(t, blocked)

	// Playback ends while the first snapshot is still being delivered.
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		h.speaker.finish(0, nil)
	}()
	require.Eventually(t, func() bool {
		return h.svc.State().SpeakingMessageID == ""
	}, 2*time.Second, 5*time.Millisecond)

	close(release)
	waitClosed(t, toggled)
	waitClosed(t, finished)

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, last.SpeakingMessageID)
}

func TestStoppedPlaybackIsNotReportedAsFailure(t *testing.T) {
	var buf bytes.Buffer
	observability.Configure("debug", &buf)
	t.Cleanup(func() { observability.Configure("info", os.Stdout) })

	h := newHarness(t, nil)

	h.svc.ToggleSpeech("ai-1", "Hello")
	h.svc.ToggleSpeech("ai-1", "Hello")
	h.speaker.finish(0, errors.New("signal: killed"))
	assert.NotContains(t, buf.String(), "speech playback failed")

	h.svc.ToggleSpeech("ai-2", "Again")
	h.speaker.finish(1, errors.New("no audio device"))
	assert.Contains(t, buf.String(), "speech playback failed")
}
