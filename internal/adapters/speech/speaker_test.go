package speech_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/career-companion/internal/adapters/speech"
	"github.com/PabloGalante/career-companion/internal/domain"
)

func waitDone(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("speech did not finish")
		return nil
	}
}

func TestCommandSpeakerMissingProgram(t *testing.T) {
	s := speech.NewCommandSpeaker("definitely-not-a-tts-program-xyz")
	done := make(chan error, 1)

	s.Speak("hello", func(err error) { done <- err })

	assert.ErrorIs(t, waitDone(t, done), domain.ErrMediaAccess)
}

func TestCommandSpeakerCompletes(t *testing.T) {
	s := speech.NewCommandSpeaker("true")
	done := make(chan error, 1)

	s.Speak("hello", func(err error) { done <- err })

	assert.NoError(t, waitDone(t, done))
}

func TestCommandSpeakerCancel(t *testing.T) {
	s := speech.NewCommandSpeaker("sleep")
	done := make(chan error, 1)

	s.Speak("30", func(err error) { done <- err })
	s.Cancel()

	assert.Error(t, waitDone(t, done))
}
