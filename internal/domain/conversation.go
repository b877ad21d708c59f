package domain

// Message is one entry of the conversation log, either from the user or the assistant.
type Message struct {
	ID        MessageID
	Sender    Sender
	Text      string
	CreatedAt Timestamp

	// ImageURL is a data URL of an uploaded image, shown inline.
	ImageURL string
	// QuickReplies are suggested answers; only the latest AI message keeps them.
	QuickReplies []string
}

// Clone returns a deep copy so snapshots never alias the log.
func (m Message) Clone() Message {
	if m.QuickReplies != nil {
		m.QuickReplies = append([]string(nil), m.QuickReplies...)
	}
	return m
}

// Turn is what the user side sends to the model: plain text or the result
// of a tool the model asked for. Exactly one of them is set.
type Turn struct {
	Text       string
	ToolResult *ToolResult
}

// Reply is the model's answer to a Turn.
type Reply struct {
	Text     string
	ToolCall *ToolCall
}

type ToolCall struct {
	Name ToolName
	Args map[string]any
}

type ToolResult struct {
	Name     ToolName
	Response map[string]any
}

// Blob is binary media ready for transport together with its MIME type.
type Blob struct {
	Data     []byte
	MIMEType string
}

// AudioClip is a finished voice recording.
type AudioClip struct {
	Data     []byte
	MIMEType string
}

// Document is an uploaded file, usually a photo of a CV.
type Document struct {
	FileName string
	MIMEType string
	Data     []byte
}
