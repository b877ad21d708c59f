package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/PabloGalante/career-companion/internal/domain"
)

// DefaultCommand records WAV audio from the default ALSA device.
const DefaultCommand = "arecord -q -f cd -t wav"

var ErrNotRecording = errors.New("not recording")

// CommandRecorder captures microphone audio by running a recording program
// that writes to the file path given as its last argument. The program is
// stopped with SIGINT so it can finish the file.
type CommandRecorder struct {
	command  string
	args     []string
	mimeType string

	mu   sync.Mutex
	cmd  *exec.Cmd
	path string
}

func NewCommandRecorder(commandLine, mimeType string) *CommandRecorder {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultCommand)
	}
	if mimeType == "" {
		mimeType = "audio/wav"
	}
	return &CommandRecorder{
		command:  fields[0],
		args:     fields[1:],
		mimeType: mimeType,
	}
}

// Start begins a recording. Failing to launch the program is reported as
// domain.ErrMediaAccess.
func (r *CommandRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return nil
	}

	f, err := os.CreateTemp("", "companion-recording-*.wav")
	if err != nil {
		return fmt.Errorf("create recording file: %w", err)
	}
	path := f.Name()
	_ = f.Close()

	cmd := exec.CommandContext(ctx, r.command, append(append([]string(nil), r.args...), path)...)
	if err := cmd.Start(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("%w: start %s: %w", domain.ErrMediaAccess, r.command, err)
	}

	r.cmd = cmd
	r.path = path
	return nil
}

// Stop ends the recording and returns what was captured.
func (r *CommandRecorder) Stop() (domain.AudioClip, error) {
	r.mu.Lock()
	cmd, path := r.cmd, r.path
	r.cmd, r.path = nil, ""
	r.mu.Unlock()

	if cmd == nil {
		return domain.AudioClip{}, ErrNotRecording
	}
	defer os.Remove(path)

	_ = cmd.Process.Signal(syscall.SIGINT)
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return domain.AudioClip{}, fmt.Errorf("wait for %s: %w", r.command, err)
		}
		// Interrupted recorders usually exit non-zero after flushing the file.
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.AudioClip{}, fmt.Errorf("read recording: %w", err)
	}
	return domain.AudioClip{Data: data, MIMEType: r.mimeType}, nil
}

func (r *CommandRecorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cmd != nil
}
