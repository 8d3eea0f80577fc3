// Package speech converts recorded audio submissions into text via Google
// Cloud Speech-to-Text. Degenerate recordings are rejected before any
// network call is made.
package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

// MinAudioBytes is the minimum payload size accepted. Anything smaller is a
// click or an empty recording, not speech.
const MinAudioBytes = 1000

// transcribeTimeout bounds a single recognition call.
const transcribeTimeout = 2 * time.Minute

// Transcriber converts an audio payload into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	Close() error
}

// GoogleTranscriber implements Transcriber on Cloud Speech-to-Text.
type GoogleTranscriber struct {
	client *speech.Client
}

// NewGoogleTranscriber creates a transcriber using ambient Google credentials.
func NewGoogleTranscriber(ctx context.Context) (*GoogleTranscriber, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &GoogleTranscriber{client: client}, nil
}

// ValidateAudio rejects payloads below the minimum size. Runs before any
// network call so a bad recording never costs an API request.
func ValidateAudio(audio []byte) error {
	if len(audio) < MinAudioBytes {
		return &TooShortError{Size: len(audio)}
	}
	return nil
}

// Transcribe converts audio to text. The returned errors implement UserFacing
// so the caller can render them directly.
func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if err := ValidateAudio(audio); err != nil {
		return "", err
	}

	encoding, err := encodingForMimeType(mimeType)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, transcribeTimeout)
	defer cancel()

	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   encoding,
			LanguageCode:               "en-US",
			AlternativeLanguageCodes:   []string{"es-ES", "fr-FR", "de-DE", "hi-IN"},
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", &TranscriptionError{Cause: err}
	}

	text := collectTranscript(resp)
	if text == "" {
		return "", &TranscriptionError{Cause: fmt.Errorf("no speech recognized")}
	}
	return text, nil
}

// Close releases the underlying client.
func (t *GoogleTranscriber) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// encodingForMimeType maps a declared MIME type onto a recognition encoding.
func encodingForMimeType(mimeType string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.Index(mt, ";"); idx >= 0 {
		mt = strings.TrimSpace(mt[:idx])
	}

	switch mt {
	case "", "audio/webm":
		return speechpb.RecognitionConfig_WEBM_OPUS, nil
	case "audio/ogg", "audio/opus":
		return speechpb.RecognitionConfig_OGG_OPUS, nil
	case "audio/wav", "audio/x-wav", "audio/wave":
		return speechpb.RecognitionConfig_LINEAR16, nil
	case "audio/flac", "audio/x-flac":
		return speechpb.RecognitionConfig_FLAC, nil
	case "audio/mp3", "audio/mpeg":
		return speechpb.RecognitionConfig_MP3, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, &UnsupportedFormatError{MimeType: mimeType}
	}
}

func collectTranscript(resp *speechpb.RecognizeResponse) string {
	var parts []string
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if t := strings.TrimSpace(alts[0].GetTranscript()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
