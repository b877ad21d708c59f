package memory

import (
	"sync"

	"github.com/PabloGalante/career-companion/internal/domain"
)

// MessageLog is the ordered in-memory conversation log.
type MessageLog struct {
	mu       sync.RWMutex
	messages []domain.Message
	index    map[domain.MessageID]int
}

func NewMessageLog() *MessageLog {
	return &MessageLog{
		index: make(map[domain.MessageID]int),
	}
}

func (l *MessageLog) Append(msg domain.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.appendLocked(msg)
}

func (l *MessageLog) Upsert(msg domain.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i, ok := l.index[msg.ID]; ok {
		l.messages[i] = msg.Clone()
		return
	}
	l.appendLocked(msg)
}

func (l *MessageLog) ClearQuickReplies() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.messages {
		l.messages[i].QuickReplies = nil
	}
}

func (l *MessageLog) Reset(msgs ...domain.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = nil
	l.index = make(map[domain.MessageID]int, len(msgs))
	for _, m := range msgs {
		l.appendLocked(m)
	}
}

func (l *MessageLog) Get(id domain.MessageID) (domain.Message, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return domain.Message{}, false
	}
	return l.messages[i].Clone(), true
}

// List returns a copy of all messages in insertion order.
func (l *MessageLog) List() []domain.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Message, len(l.messages))
	for i, m := range l.messages {
		out[i] = m.Clone()
	}
	return out
}

func (l *MessageLog) appendLocked(msg domain.Message) {
	l.index[msg.ID] = len(l.messages)
	l.messages = append(l.messages, msg.Clone())
}
