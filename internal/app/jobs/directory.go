package jobs

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/observability"
)

// MaxResults caps every search.
const MaxResults = 5

// Directory searches a fixed catalog of job listings.
type Directory struct {
	catalog []domain.JobListing

	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Directory)

// WithRand makes result ordering reproducible.
func WithRand(r *rand.Rand) Option {
	return func(d *Directory) {
		d.rng = r
	}
}

// NewDirectory creates a directory over catalog. A nil catalog means DefaultCatalog.
func NewDirectory(catalog []domain.JobListing, opts ...Option) *Directory {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	d := &Directory{
		catalog: catalog,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type SearchInput struct {
	Query    string
	Location string
	// JobType is accepted for the tool contract but does not filter yet.
	JobType string
}

// Search filters by query (title or description) and location, both
// case-insensitive substrings, then shuffles and keeps at most MaxResults.
func (d *Directory) Search(ctx context.Context, in SearchInput) []domain.JobListing {
	log := observability.LoggerFromContext(ctx).With(
		"query", in.Query,
		"location", in.Location,
		"job_type", in.JobType,
	)

	query := strings.ToLower(in.Query)
	location := strings.ToLower(in.Location)

	results := make([]domain.JobListing, 0, len(d.catalog))
	for _, job := range d.catalog {
		if query != "" &&
			!strings.Contains(strings.ToLower(job.Title), query) &&
			!strings.Contains(strings.ToLower(job.Description), query) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		results = append(results, job)
	}

	d.mu.Lock()
	d.rng.Shuffle(len(results), func(i, j int) {
		results[i], results[j] = results[j], results[i]
	})
	d.mu.Unlock()

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	log.Debug("job search completed", "result_count", len(results))
	return results
}
