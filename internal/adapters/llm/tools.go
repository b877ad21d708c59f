package llm

import (
	"google.golang.org/genai"

	"github.com/PabloGalante/career-companion/internal/domain"
)

// findJobsTool is registered on every chat session.
var findJobsTool = &genai.Tool{
	FunctionDeclarations: []*genai.FunctionDeclaration{
		{
			Name:        string(domain.ToolFindJobs),
			Description: "Searches for job listings based on a query, location, and job type.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"query": {
						Type:        genai.TypeString,
						Description: `The job title, skill, or keyword to search for. E.g., "React developer", "project manager".`,
					},
					"location": {
						Type:        genai.TypeString,
						Description: `The city or region to search for jobs in. E.g., "Cape Town", "Johannesburg".`,
					},
					"job_type": {
						Type:        genai.TypeString,
						Description: `The type of employment. E.g., "full-time", "part-time", "contract".`,
					},
				},
				Required: []string{"query", "location"},
			},
		},
	},
}

// toolCallFrom returns the first function call of resp, if any.
func toolCallFrom(resp *genai.GenerateContentResponse) *domain.ToolCall {
	if resp == nil {
		return nil
	}
	calls := resp.FunctionCalls()
	if len(calls) == 0 || calls[0] == nil {
		return nil
	}
	args := calls[0].Args
	if args == nil {
		args = map[string]any{}
	}
	return &domain.ToolCall{
		Name: domain.ToolName(calls[0].Name),
		Args: args,
	}
}
