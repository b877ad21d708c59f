package jobs_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/career-companion/internal/app/jobs"
	"github.com/PabloGalante/career-companion/internal/domain"
)

func newDirectory() *jobs.Directory {
	return jobs.NewDirectory(nil, jobs.WithRand(rand.New(rand.NewPCG(1, 2))))
}

func TestSearchDeveloperInCapeTown(t *testing.T) {
	got := newDirectory().Search(context.Background(), jobs.SearchInput{
		Query:    "developer",
		Location: "Cape Town",
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Senior Frontend Developer (React)", got[0].Title)
}

func TestSearchIsCaseInsensitiveAndMatchesDescription(t *testing.T) {
	got := newDirectory().Search(context.Background(), jobs.SearchInput{Query: "SQL"})

	require.Len(t, got, 1)
	assert.Equal(t, "Data Analyst", got[0].Title)
}

func TestSearchLocationOnly(t *testing.T) {
	got := newDirectory().Search(context.Background(), jobs.SearchInput{Location: "gauteng"})

	assert.Len(t, got, 3)
	for _, job := range got {
		assert.Contains(t, job.Location, "Gauteng")
	}
}

func TestSearchCapsResults(t *testing.T) {
	got := newDirectory().Search(context.Background(), jobs.SearchInput{})

	assert.Len(t, got, jobs.MaxResults)
}

func TestSearchIgnoresJobType(t *testing.T) {
	dir := newDirectory()
	with := dir.Search(context.Background(), jobs.SearchInput{Location: "Remote", JobType: "part-time"})
	without := dir.Search(context.Background(), jobs.SearchInput{Location: "Remote"})

	assert.Equal(t, without, with)
}

func TestSearchNoMatch(t *testing.T) {
	got := newDirectory().Search(context.Background(), jobs.SearchInput{Query: "astronaut"})

	assert.Empty(t, got)
}

func TestSearchCustomCatalog(t *testing.T) {
	dir := jobs.NewDirectory([]domain.JobListing{{Title: "Baker", Location: "Soweto"}})

	got := dir.Search(context.Background(), jobs.SearchInput{Query: "bake"})

	require.Len(t, got, 1)
	assert.Equal(t, "Baker", got[0].Title)
}
