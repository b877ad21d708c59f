package llm_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/career-companion/internal/adapters/llm"
	"github.com/PabloGalante/career-companion/internal/domain"
)

func TestMockGatewayGreetsInFragments(t *testing.T) {
	session, err := llm.NewMockGateway().CreateSession(context.Background(), "af")
	require.NoError(t, err)

	var fragments []string
	for fragment, err := range session.SendStream(context.Background(), "Introduce yourself and welcome me.") {
		require.NoError(t, err)
		fragments = append(fragments, fragment)
	}

	assert.Greater(t, len(fragments), 1)
	assert.Contains(t, strings.Join(fragments, ""), "Afrikaans")
}

func TestMockGatewayToolRoundTrip(t *testing.T) {
	session, _ := llm.NewMockGateway().CreateSession(context.Background(), "en")

	reply, err := session.Send(context.Background(), domain.Turn{Text: "Find me a JOB please"})
	require.NoError(t, err)
	require.NotNil(t, reply.ToolCall)
	assert.Equal(t, domain.ToolFindJobs, reply.ToolCall.Name)

	reply, err = session.Send(context.Background(), domain.Turn{ToolResult: &domain.ToolResult{
		Name:     domain.ToolFindJobs,
		Response: map[string]any{"jobs": []domain.JobListing{{Title: "Baker", Company: "Bread Co", Location: "Soweto", URL: "#"}}},
	}})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "**Baker** at Bread Co")
}

func TestMockGatewayTranscribeEmpty(t *testing.T) {
	_, err := llm.NewMockGateway().TranscribeAudio(context.Background(), domain.Blob{})
	assert.ErrorIs(t, err, domain.ErrEmptyResult)
}
