package speech

import "fmt"

// UserFacing is implemented by errors that carry a message meant to be
// rendered to the user as-is. Both speech failures are terminal for the
// request: there is no fallback text synthesis because accuracy here cannot
// be faked.
type UserFacing interface {
	error
	UserMessage() string
}

// TooShortError indicates the recording is below the minimum size and was
// rejected before any network call.
type TooShortError struct {
	Size int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("audio payload too short: %d bytes (minimum %d)", e.Size, MinAudioBytes)
}

// UserMessage returns the message shown to the user.
func (e *TooShortError) UserMessage() string {
	return "Your recording was too short or empty. Please record your answer again."
}

// TranscriptionError indicates the transcription service failed or returned
// nothing usable.
type TranscriptionError struct {
	Cause error
}

func (e *TranscriptionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transcription failed: %v", e.Cause)
	}
	return "transcription failed"
}

func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the message shown to the user.
func (e *TranscriptionError) UserMessage() string {
	return "We could not process your audio. Please try again or type your answer instead."
}

// UnsupportedFormatError indicates the declared audio format is not one the
// transcription service accepts.
type UnsupportedFormatError struct {
	MimeType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported audio format: %s", e.MimeType)
}

// UserMessage returns the message shown to the user.
func (e *UnsupportedFormatError) UserMessage() string {
	return "That audio format is not supported. Please record in WebM, Ogg, WAV, FLAC or MP3."
}
