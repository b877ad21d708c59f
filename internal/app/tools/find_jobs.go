package tools

import (
	"context"

	"github.com/PabloGalante/career-companion/internal/app/jobs"
	"github.com/PabloGalante/career-companion/internal/domain"
)

// FindJobsTool exposes the job directory to the model.
type FindJobsTool struct {
	directory *jobs.Directory
}

func NewFindJobsTool(directory *jobs.Directory) *FindJobsTool {
	return &FindJobsTool{directory: directory}
}

func (t *FindJobsTool) Name() domain.ToolName {
	return domain.ToolFindJobs
}

// Call expects an input with this shape:
//
//	{
//	  "query": "developer",
//	  "location": "Cape Town",
//	  "job_type": "full-time"
//	}
//
// and answers {"jobs": [...]}.
func (t *FindJobsTool) Call(ctx context.Context, input map[string]any) (map[string]any, error) {
	listings := t.directory.Search(ctx, jobs.SearchInput{
		Query:    getString(input, "query"),
		Location: getString(input, "location"),
		JobType:  getString(input, "job_type"),
	})
	return map[string]any{"jobs": listings}, nil
}
