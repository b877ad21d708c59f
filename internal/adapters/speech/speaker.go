package speech

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/PabloGalante/career-companion/internal/domain"
)

// DefaultCommand is the text-to-speech program used when none is configured.
const DefaultCommand = "espeak-ng"

// CommandSpeaker reads text aloud by running a local text-to-speech
// program with the text as its last argument. Only one process runs at a
// time.
type CommandSpeaker struct {
	command string
	args    []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewCommandSpeaker parses commandLine ("espeak-ng -v en") into program and
// leading arguments.
func NewCommandSpeaker(commandLine string) *CommandSpeaker {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		fields = []string{DefaultCommand}
	}
	return &CommandSpeaker{
		command: fields[0],
		args:    fields[1:],
	}
}

func (s *CommandSpeaker) Speak(text string, done func(error)) {
	narration := Narration(text)
	cmd := exec.Command(s.command, append(append([]string(nil), s.args...), narration)...)

	s.mu.Lock()
	s.cancelLocked()
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		go done(fmt.Errorf("%w: start %s: %w", domain.ErrMediaAccess, s.command, err))
		return
	}
	s.cmd = cmd
	s.mu.Unlock()

	go func() {
		err := cmd.Wait()

		s.mu.Lock()
		if s.cmd == cmd {
			s.cmd = nil
		}
		s.mu.Unlock()

		done(err)
	}()
}

func (s *CommandSpeaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *CommandSpeaker) cancelLocked() {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	_ = s.cmd.Process.Kill()
	s.cmd = nil
}
