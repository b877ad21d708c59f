package domain

import "errors"

var (
	// ErrConfiguration means a required credential or setting is missing.
	// It is recoverable: the next call checks again.
	ErrConfiguration = errors.New("configuration error")

	ErrTransport = errors.New("model transport error")

	// ErrEmptyResult is returned when the model answered with no usable text.
	ErrEmptyResult = errors.New("empty model result")

	ErrTranscription = errors.New("transcription failed")

	// ErrMediaAccess means the microphone (or another capture device) could not be opened.
	ErrMediaAccess = errors.New("media access denied")

	ErrUnknownTool = errors.New("unknown tool")
)
