package transcode

import (
	"errors"
	"mime"
	"strings"

	"github.com/PabloGalante/career-companion/internal/domain"
)

// DefaultAudioMIMEType is assumed when a recording carries no type.
const DefaultAudioMIMEType = "audio/webm"

var ErrEmptyAudio = errors.New("audio clip is empty")

// EncodeAudio turns a finished recording into a transport payload. Codec
// parameters such as "; codecs=opus" are dropped from the MIME type.
func EncodeAudio(clip domain.AudioClip) (domain.Blob, error) {
	if len(clip.Data) == 0 {
		return domain.Blob{}, ErrEmptyAudio
	}
	return domain.Blob{
		Data:     clip.Data,
		MIMEType: baseMIMEType(clip.MIMEType, DefaultAudioMIMEType),
	}, nil
}

func baseMIMEType(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return fallback
	}
	return mediaType
}
