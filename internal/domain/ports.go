package domain

import (
	"context"
	"iter"
)

// ModelGateway is the only component that talks to the generative model.
type ModelGateway interface {
	CreateSession(ctx context.Context, language LanguageCode) (ChatSession, error)
	TranscribeAudio(ctx context.Context, audio Blob) (string, error)
	AnalyzeDocument(ctx context.Context, image Blob) (string, error)
}

// ChatSession is a stateful multi-turn exchange with the model. The model
// side keeps the history, so callers only send the new turn.
type ChatSession interface {
	// SendStream yields text fragments of the reply in order. The sequence
	// is finite and can be ranged over once.
	SendStream(ctx context.Context, text string) iter.Seq2[string, error]
	Send(ctx context.Context, turn Turn) (Reply, error)
}

// MessageLog holds the ordered conversation messages.
type MessageLog interface {
	Append(msg Message)
	// Upsert replaces the message with the same ID in place, or appends it.
	Upsert(msg Message)
	ClearQuickReplies()
	Reset(msgs ...Message)
	Get(id MessageID) (Message, bool)
	List() []Message
}

// SessionRegistry keeps the single active chat session and the generation
// token used to discard late results from replaced sessions.
type SessionRegistry interface {
	// Begin drops the active session and returns the generation of its successor.
	Begin() Generation
	// Attach installs session if gen is still current.
	Attach(gen Generation, session ChatSession) bool
	Current() (ChatSession, Generation)
	IsCurrent(gen Generation) bool
}

// Speaker plays text aloud, one utterance at a time. done is always called
// from a goroutine other than the caller's, once per Speak.
type Speaker interface {
	Speak(text string, done func(error))
	Cancel()
}

// Recorder captures microphone audio between Start and Stop.
type Recorder interface {
	Start(ctx context.Context) error
	Stop() (AudioClip, error)
	Recording() bool
}
