package llm

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/observability"
)

const DefaultModelName = "gemini-2.5-flash"

// GeminiGateway implements domain.ModelGateway on the Gemini API.
// The underlying client is created on first use, so a process without an
// API key still starts and reports a configuration error per call.
type GeminiGateway struct {
	apiKey    string
	modelName string
	baseURL   string

	mu     sync.Mutex
	client *genai.Client
}

type GeminiOption func(*GeminiGateway)

// WithBaseURL points the client at another endpoint (tests, proxies).
func WithBaseURL(url string) GeminiOption {
	return func(g *GeminiGateway) {
		g.baseURL = url
	}
}

func NewGeminiGateway(apiKey, modelName string, opts ...GeminiOption) *GeminiGateway {
	if modelName == "" {
		modelName = DefaultModelName
	}
	g := &GeminiGateway{
		apiKey:    strings.TrimSpace(apiKey),
		modelName: modelName,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GeminiGateway) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: API key is not set", domain.ErrConfiguration)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating gemini client: %w", domain.ErrConfiguration, err)
	}
	g.client = client
	return client, nil
}

// CreateSession opens a chat with the localized instruction and the findJobs tool.
func (g *GeminiGateway) CreateSession(ctx context.Context, language domain.LanguageCode) (domain.ChatSession, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(BuildSystemPrompt(language), genai.RoleUser),
		Tools:             []*genai.Tool{findJobsTool},
	}

	chat, err := client.Chats.Create(ctx, g.modelName, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create chat: %w", domain.ErrTransport, err)
	}

	observability.LoggerFromContext(ctx).Info("chat session created",
		"model", g.modelName,
		"language", language,
	)
	return &geminiSession{chat: chat}, nil
}

// TranscribeAudio returns the trimmed transcript of audio.
func (g *GeminiGateway) TranscribeAudio(ctx context.Context, audio domain.Blob) (string, error) {
	text, err := g.generate(ctx, transcribeInstruction, audio)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTranscription, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrTranscription, domain.ErrEmptyResult)
	}
	return text, nil
}

// AnalyzeDocument asks the model for CV feedback on image.
func (g *GeminiGateway) AnalyzeDocument(ctx context.Context, image domain.Blob) (string, error) {
	text, err := g.generate(ctx, analyzeDocumentInstruction, image)
	if err != nil {
		return "", fmt.Errorf("analyze document: %w", err)
	}
	return text, nil
}

// generate runs a stateless single request: instruction followed by inline media.
func (g *GeminiGateway) generate(ctx context.Context, instruction string, media domain.Blob) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(instruction),
			genai.NewPartFromBytes(media.Data, media.MIMEType),
		}, genai.RoleUser),
	}

	res, err := client.Models.GenerateContent(ctx, g.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %w", domain.ErrTransport, err)
	}
	return res.Text(), nil
}

type geminiSession struct {
	chat *genai.Chat
}

func (s *geminiSession) SendStream(ctx context.Context, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for res, err := range s.chat.SendMessageStream(ctx, *genai.NewPartFromText(text)) {
			if err != nil {
				yield("", fmt.Errorf("%w: stream message: %w", domain.ErrTransport, err))
				return
			}
			fragment := res.Text()
			if fragment == "" {
				continue
			}
			if !yield(fragment, nil) {
				return
			}
		}
	}
}

func (s *geminiSession) Send(ctx context.Context, turn domain.Turn) (domain.Reply, error) {
	part := genai.Part{Text: turn.Text}
	if turn.ToolResult != nil {
		part = genai.Part{
			FunctionResponse: &genai.FunctionResponse{
				Name:     string(turn.ToolResult.Name),
				Response: turn.ToolResult.Response,
			},
		}
	}

	res, err := s.chat.SendMessage(ctx, part)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("%w: send message: %w", domain.ErrTransport, err)
	}

	return domain.Reply{
		Text:     res.Text(),
		ToolCall: toolCallFrom(res),
	}, nil
}
