package conversation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/PabloGalante/career-companion/internal/domain"
)

const greetingPrompt = "Introduce yourself and welcome me."

// Fixed texts shown in place of a model answer.
const (
	textConnectivity     = "Sorry, I'm having trouble connecting right now. Please check your network connection and refresh the page."
	textNotConfigured    = "I'm not set up yet: no API key was found. Please configure an API key and restart the assistant."
	textFallback         = "I'm not sure how to respond to that. Could you try rephrasing?"
	textTurnError        = "I apologize, but I encountered an error. Please try again."
	textAudioUnclear     = "I'm sorry, I couldn't understand the audio. Could you please try again?"
	textAudioError       = "I apologize, but there was an error processing your audio. Please try again."
	textDocumentError    = "I apologize, but there was an error analyzing your document. Please ensure it is a clear image file and try again."
	documentCaptionFmt   = "(Uploaded CV: %s)"
	MicrophoneDeniedText = "Microphone access was denied. Please allow microphone access in your settings to use this feature."
)

func newMessageID(prefix string) domain.MessageID {
	return domain.MessageID(prefix + "-" + uuid.NewString())
}

func (s *Service) userMessage(text string) domain.Message {
	return domain.Message{
		ID:        s.newID("user"),
		Sender:    domain.SenderUser,
		Text:      text,
		CreatedAt: s.now(),
	}
}

func (s *Service) documentMessage(fileName, dataURL string) domain.Message {
	msg := s.userMessage(fmt.Sprintf(documentCaptionFmt, fileName))
	msg.ID = s.newID("user-img")
	msg.ImageURL = dataURL
	return msg
}

// aiMessage builds an assistant message from raw model text, splitting off quick replies.
func (s *Service) aiMessage(id domain.MessageID, raw string) domain.Message {
	text, replies := ParseQuickReplies(raw)
	return domain.Message{
		ID:           id,
		Sender:       domain.SenderAI,
		Text:         text,
		QuickReplies: replies,
		CreatedAt:    s.now(),
	}
}

func (s *Service) errorMessage(text string) domain.Message {
	return domain.Message{
		ID:        s.newID("error"),
		Sender:    domain.SenderAI,
		Text:      text,
		CreatedAt: s.now(),
	}
}
