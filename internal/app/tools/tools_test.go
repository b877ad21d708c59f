package tools_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/career-companion/internal/app/jobs"
	"github.com/PabloGalante/career-companion/internal/app/tools"
	"github.com/PabloGalante/career-companion/internal/domain"
)

type failingTool struct{}

func (failingTool) Name() domain.ToolName { return "broken" }

func (failingTool) Call(context.Context, map[string]any) (map[string]any, error) {
	return nil, errors.New("boom")
}

func newRegistry() *tools.Registry {
	dir := jobs.NewDirectory(nil, jobs.WithRand(rand.New(rand.NewPCG(7, 7))))
	return tools.NewRegistry(tools.NewFindJobsTool(dir), failingTool{})
}

func TestDispatchFindJobs(t *testing.T) {
	out, err := newRegistry().Dispatch(context.Background(), domain.ToolCall{
		Name: domain.ToolFindJobs,
		Args: map[string]any{"query": "developer", "location": "Cape Town"},
	})
	require.NoError(t, err)

	listings, ok := out["jobs"].([]domain.JobListing)
	require.True(t, ok)
	require.Len(t, listings, 1)
	assert.Equal(t, "TechSolutions ZA", listings[0].Company)
}

func TestDispatchIgnoresNonStringArgs(t *testing.T) {
	out, err := newRegistry().Dispatch(context.Background(), domain.ToolCall{
		Name: domain.ToolFindJobs,
		Args: map[string]any{"query": 42, "location": "Remote"},
	})
	require.NoError(t, err)

	listings := out["jobs"].([]domain.JobListing)
	require.Len(t, listings, 1)
	assert.Equal(t, "Cloud Engineer (AWS)", listings[0].Title)
}

func TestDispatchUnknownTool(t *testing.T) {
	_, err := newRegistry().Dispatch(context.Background(), domain.ToolCall{Name: "bookFlight"})

	assert.ErrorIs(t, err, domain.ErrUnknownTool)
}

func TestDispatchWrapsToolError(t *testing.T) {
	_, err := newRegistry().Dispatch(context.Background(), domain.ToolCall{Name: "broken"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: boom")
}
