package llm

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/i18n"
)

// MockGateway is an offline stand-in for the model. It greets in several
// fragments, asks for findJobs whenever a message mentions a job and
// otherwise reflects the message back.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) CreateSession(_ context.Context, language domain.LanguageCode) (domain.ChatSession, error) {
	return &mockSession{language: language}, nil
}

func (m *MockGateway) TranscribeAudio(_ context.Context, audio domain.Blob) (string, error) {
	if len(audio.Data) == 0 {
		return "", fmt.Errorf("%w: %w", domain.ErrTranscription, domain.ErrEmptyResult)
	}
	return "Can you help me find a job?", nil
}

func (m *MockGateway) AnalyzeDocument(_ context.Context, image domain.Blob) (string, error) {
	return fmt.Sprintf("Thanks for sharing your CV (%d bytes, %s). It reads clearly. "+
		"Consider adding measurable results to each role. [Improve my summary] [Find matching jobs]",
		len(image.Data), image.MIMEType), nil
}

type mockSession struct {
	language domain.LanguageCode
}

func (s *mockSession) SendStream(_ context.Context, _ string) iter.Seq2[string, error] {
	greeting := []string{
		"Hello! ",
		"I'm your career and wellbeing assistant. ",
		fmt.Sprintf("We can talk in %s. ", i18n.Name(s.language)),
		"How are you feeling about your job search today? ",
		"[Find me a job] [I'm feeling anxious]",
	}
	return func(yield func(string, error) bool) {
		for _, fragment := range greeting {
			if !yield(fragment, nil) {
				return
			}
		}
	}
}

func (s *mockSession) Send(_ context.Context, turn domain.Turn) (domain.Reply, error) {
	if turn.ToolResult != nil {
		return domain.Reply{Text: describeJobs(turn.ToolResult.Response)}, nil
	}

	if strings.Contains(strings.ToLower(turn.Text), "job") {
		return domain.Reply{
			ToolCall: &domain.ToolCall{
				Name: domain.ToolFindJobs,
				Args: map[string]any{"query": "", "location": ""},
			},
		}, nil
	}

	return domain.Reply{
		Text: fmt.Sprintf("I hear you. You said %q. Tell me a bit more about the kind of work you enjoy. [Full-time] [Part-time]", turn.Text),
	}, nil
}

func describeJobs(response map[string]any) string {
	listings, _ := response["jobs"].([]domain.JobListing)
	if len(listings) == 0 {
		return "I couldn't find any openings right now. Would you like to try another role or city?"
	}

	var b strings.Builder
	b.WriteString("Here are some openings I found:\n\n")
	for _, job := range listings {
		fmt.Fprintf(&b, "- **%s** at %s, %s (apply: %s)\n", job.Title, job.Company, job.Location, job.URL)
	}
	b.WriteString("\nWould you like help preparing an application? [Yes, please] [Show me courses]")
	return b.String()
}
