package domain

import "time"

type MessageID string

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// LanguageCode is a short language tag such as "en" or "zu".
type LanguageCode string

// Generation identifies one incarnation of the model session. It changes
// every time the session is replaced.
type Generation uint64

type ToolName string

const ToolFindJobs ToolName = "findJobs"

type Timestamp = time.Time
