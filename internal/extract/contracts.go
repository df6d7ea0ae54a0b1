package extract

import "context"

// Recognition is the raw output of the OCR collaborator: the decoded text
// and an overall confidence in 0..100.
type Recognition struct {
	Text       string `json:"text"`
	Confidence int    `json:"confidence"`
}

// Recognizer is the external OCR boundary: image -> (text, confidence).
// Implementations may shell out, call a remote service, or be stubbed in
// tests; the pipeline treats any error (or out-of-range confidence) as an
// acquisition failure.
type Recognizer interface {
	Recognize(ctx context.Context, imageURI string) (Recognition, error)
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, imageURI string) (Recognition, error)

func (f RecognizerFunc) Recognize(ctx context.Context, imageURI string) (Recognition, error) {
	return f(ctx, imageURI)
}
