package llm_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/career-companion/internal/adapters/llm"
	"github.com/PabloGalante/career-companion/internal/domain"
)

func fakeGemini(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func textResponse(text string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":` + `"` + text + `"` + `}]}}]}`
}

func TestMissingAPIKeyIsConfigurationError(t *testing.T) {
	gw := llm.NewGeminiGateway("  ", "")

	_, err := gw.CreateSession(context.Background(), "en")
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = gw.TranscribeAudio(context.Background(), domain.Blob{Data: []byte{1}, MIMEType: "audio/webm"})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrTranscription)

	_, err = gw.AnalyzeDocument(context.Background(), domain.Blob{Data: []byte{1}, MIMEType: "image/png"})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestTranscribeAudioTrims(t *testing.T) {
	srv := fakeGemini(t, http.StatusOK, textResponse("  find me a job  "))
	gw := llm.NewGeminiGateway("test-key", "", llm.WithBaseURL(srv.URL))

	text, err := gw.TranscribeAudio(context.Background(), domain.Blob{Data: []byte{1, 2}, MIMEType: "audio/webm"})
	require.NoError(t, err)
	assert.Equal(t, "find me a job", text)
}

func TestTranscribeAudioEmptyResult(t *testing.T) {
	srv := fakeGemini(t, http.StatusOK, textResponse("   "))
	gw := llm.NewGeminiGateway("test-key", "", llm.WithBaseURL(srv.URL))

	_, err := gw.TranscribeAudio(context.Background(), domain.Blob{Data: []byte{1}, MIMEType: "audio/webm"})
	assert.ErrorIs(t, err, domain.ErrEmptyResult)
	assert.ErrorIs(t, err, domain.ErrTranscription)
}

func TestAnalyzeDocumentTransportError(t *testing.T) {
	srv := fakeGemini(t, http.StatusInternalServerError, `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`)
	gw := llm.NewGeminiGateway("test-key", "", llm.WithBaseURL(srv.URL))

	_, err := gw.AnalyzeDocument(context.Background(), domain.Blob{Data: []byte{1}, MIMEType: "image/png"})
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestSessionSendDecodesToolCall(t *testing.T) {
	srv := fakeGemini(t, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[`+
		`{"functionCall":{"name":"findJobs","args":{"query":"developer","location":"Cape Town"}}}]}}]}`)
	gw := llm.NewGeminiGateway("test-key", "", llm.WithBaseURL(srv.URL))

	session, err := gw.CreateSession(context.Background(), "en")
	require.NoError(t, err)

	reply, err := session.Send(context.Background(), domain.Turn{Text: "find me developer jobs in Cape Town"})
	require.NoError(t, err)
	require.NotNil(t, reply.ToolCall)
	assert.Equal(t, domain.ToolFindJobs, reply.ToolCall.Name)
	assert.Equal(t, "developer", reply.ToolCall.Args["query"])
	assert.Empty(t, reply.Text)
}

func TestSessionSendText(t *testing.T) {
	srv := fakeGemini(t, http.StatusOK, textResponse("Sure! [Full-time] [Part-time]"))
	gw := llm.NewGeminiGateway("test-key", "", llm.WithBaseURL(srv.URL))

	session, err := gw.CreateSession(context.Background(), "zu")
	require.NoError(t, err)

	reply, err := session.Send(context.Background(), domain.Turn{Text: "hi"})
	require.NoError(t, err)
	assert.Nil(t, reply.ToolCall)
	assert.Equal(t, "Sure! [Full-time] [Part-time]", reply.Text)
}
