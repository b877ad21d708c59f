package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/career-companion/internal/adapters/audio"
	"github.com/PabloGalante/career-companion/internal/app/conversation"
	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/i18n"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runChat,
	}
	cmd.Flags().String("record-command", audio.DefaultCommand, "program used to record from the microphone")
	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, os.Stderr, "warn")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	svc := buildService(cfg)
	defer svc.Close()

	term := newTerminal(svc, audio.NewCommandRecorder(cfg.RecordCommand, ""), cmd.OutOrStdout())
	unsubscribe := svc.Subscribe(term.render)
	defer unsubscribe()

	term.printf("%s\n", i18n.For(cfg.Language).HeaderTitle)
	term.printf("Type /help for commands.\n")
	svc.Start(ctx, cfg.Language)

	return term.loop(ctx, cmd.InOrStdin())
}

// terminal renders conversation snapshots as an append-only transcript and
// turns input lines into conversation intents.
type terminal struct {
	svc      *conversation.Service
	recorder domain.Recorder

	mu           sync.Mutex
	out          io.Writer
	printed      map[domain.MessageID]string
	optionsShown map[domain.MessageID]bool
	typing       bool
	dirty        bool
	lastTyped    string
}

func newTerminal(svc *conversation.Service, recorder domain.Recorder, out io.Writer) *terminal {
	return &terminal{
		svc:          svc,
		recorder:     recorder,
		out:          out,
		printed:      make(map[domain.MessageID]string),
		optionsShown: make(map[domain.MessageID]bool),
	}
}

func (t *terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) render(st conversation.State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, m := range st.Messages {
		prev, seen := t.printed[m.ID]
		switch {
		case !seen && m.Sender == domain.SenderUser:
			if m.Text != t.lastTyped || m.ImageURL != "" {
				fmt.Fprintf(t.out, "you> %s\n", m.Text)
			}
		case !seen:
			fmt.Fprintf(t.out, "\nassistant> %s", m.Text)
			t.dirty = true
		case m.Text == prev:
		case strings.HasPrefix(m.Text, prev):
			fmt.Fprint(t.out, m.Text[len(prev):])
			t.dirty = true
		default:
			fmt.Fprintf(t.out, "\nassistant> %s", m.Text)
			t.dirty = true
		}
		t.printed[m.ID] = m.Text
	}

	if st.ShowTypingIndicator() && !t.typing {
		fmt.Fprint(t.out, "\n(typing...)")
	}
	if st.IsTranscribing && !t.typing {
		fmt.Fprint(t.out, "\n(listening...)")
	}
	t.typing = st.ShowTypingIndicator() || st.IsTranscribing

	if st.IsLoading || st.IsTranscribing || len(st.Messages) == 0 || !t.dirty {
		return
	}
	t.dirty = false
	fmt.Fprintln(t.out)

	last := st.Messages[len(st.Messages)-1]
	if last.Sender == domain.SenderAI && len(last.QuickReplies) > 0 && !t.optionsShown[last.ID] {
		t.optionsShown[last.ID] = true
		for i, option := range last.QuickReplies {
			fmt.Fprintf(t.out, "  %d) %s\n", i+1, option)
		}
	}
	if st.ShowStarters() {
		fmt.Fprintln(t.out, "  (type /starters for ideas)")
	}
}

func (t *terminal) loop(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := t.handle(ctx, strings.TrimSpace(line)); quit {
				return nil
			}
		}
	}
}

func (t *terminal) handle(ctx context.Context, line string) (quit bool) {
	if line == "" {
		return false
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		t.printf("commands: /lang <en|zu|xh|af>, /starters, /starter <n>, /cv <image>, /audio <file>, /record, /speak, /quit\n" +
			"type a number to pick a suggested reply\n")
	case "/lang":
		code, ok := i18n.Normalize(arg)
		if !ok {
			t.printf("unsupported language %q\n", arg)
			return false
		}
		t.resetTranscript()
		t.printf("%s\n", i18n.For(code).HeaderTitle)
		t.svc.Start(ctx, code)
	case "/starters":
		for i, s := range i18n.For(t.svc.State().Language).Starters {
			t.printf("  %d) %s\n", i+1, s.Title)
		}
	case "/starter":
		starters := i18n.For(t.svc.State().Language).Starters
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(starters) {
			t.printf("pick a starter between 1 and %d\n", len(starters))
			return false
		}
		t.send(ctx, starters[n-1].Prompt)
	case "/cv":
		t.submitDocument(ctx, arg)
	case "/audio":
		t.submitAudioFile(ctx, arg)
	case "/record":
		t.toggleRecording(ctx)
	case "/speak":
		t.speakLatest()
	default:
		if n, err := strconv.Atoi(line); err == nil {
			replies := t.svc.State().LastQuickReplies()
			if n >= 1 && n <= len(replies) {
				t.send(ctx, replies[n-1])
				return false
			}
		}
		t.send(ctx, line)
	}
	return false
}

func (t *terminal) send(ctx context.Context, text string) {
	t.mu.Lock()
	t.lastTyped = text
	t.mu.Unlock()

	if !t.svc.SendText(ctx, text) {
		t.printf("(still working on the last request, please wait)\n")
	}
}

func (t *terminal) submitDocument(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		t.printf("cannot read %s: %v\n", path, err)
		return
	}
	doc := domain.Document{
		FileName: filepath.Base(path),
		MIMEType: mime.TypeByExtension(filepath.Ext(path)),
		Data:     data,
	}
	if !t.svc.SubmitDocument(ctx, doc) {
		t.printf("(still working on the last request, please wait)\n")
	}
}

func (t *terminal) submitAudioFile(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		t.printf("cannot read %s: %v\n", path, err)
		return
	}
	clip := domain.AudioClip{Data: data, MIMEType: mime.TypeByExtension(filepath.Ext(path))}
	if !t.svc.SubmitAudio(ctx, clip) {
		t.printf("(still working on the last request, please wait)\n")
	}
}

func (t *terminal) toggleRecording(ctx context.Context) {
	if !t.recorder.Recording() {
		if err := t.recorder.Start(ctx); err != nil {
			if errors.Is(err, domain.ErrMediaAccess) {
				t.printf("%s\n", conversation.MicrophoneDeniedText)
				return
			}
			t.printf("could not start recording: %v\n", err)
			return
		}
		t.printf("(recording, type /record again to send)\n")
		return
	}

	clip, err := t.recorder.Stop()
	if err != nil {
		t.printf("could not finish recording: %v\n", err)
		return
	}
	if !t.svc.SubmitAudio(ctx, clip) {
		t.printf("(still working on the last request, please wait)\n")
	}
}

func (t *terminal) speakLatest() {
	st := t.svc.State()
	for i := len(st.Messages) - 1; i >= 0; i-- {
		if m := st.Messages[i]; m.Sender == domain.SenderAI {
			t.svc.ToggleSpeech(m.ID, m.Text)
			return
		}
	}
	t.printf("nothing to read yet\n")
}

func (t *terminal) resetTranscript() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printed = make(map[domain.MessageID]string)
	t.optionsShown = make(map[domain.MessageID]bool)
	t.dirty = false
}

func envSet(key string) bool {
	v, ok := os.LookupEnv(key)
	return ok && v != ""
}
