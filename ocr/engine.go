package ocr

import (
	"errors"
	"fmt"
	"sync"
)

// ErrOCRNotEnabled reports that recognition was requested from a binary
// built without the ocr tag.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Engine owns a lazily created OCR client. Creating a Tesseract session is
// expensive, so one client is reused across recognitions; calls are
// serialized because the underlying session is not safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	client   *Client
	language string
}

// NewEngine creates an Engine recognizing English. No client is created
// until the first Recognize call.
func NewEngine() *Engine {
	return &Engine{language: "eng"}
}

var (
	sharedOnce   sync.Once
	sharedEngine *Engine
)

// Shared returns the process-wide engine used by the extraction pipeline.
func Shared() *Engine {
	sharedOnce.Do(func() {
		sharedEngine = NewEngine()
	})
	return sharedEngine
}

// SetLanguage changes the language used for subsequent recognitions. If a
// client is already live the change applies to it immediately.
func (e *Engine) SetLanguage(lang string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.language = lang
	if e.client != nil {
		return e.client.SetLanguage(lang)
	}
	return nil
}

// Recognize runs OCR on image data, creating the client on first use.
func (e *Engine) Recognize(imageData []byte) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		client, err := New()
		if err != nil {
			return "", err
		}
		if e.language != "" {
			if err := client.SetLanguage(e.language); err != nil {
				client.Close()
				return "", fmt.Errorf("set OCR language %q: %w", e.language, err)
			}
		}
		e.client = client
	}

	return e.client.RecognizeImage(imageData)
}

// Shutdown closes the engine's client and releases Tesseract resources.
// The engine remains usable; the next Recognize creates a fresh client.
// Safe to call when no client was ever created.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}

// Shutdown releases the process-wide engine's resources.
func Shutdown() error {
	return Shared().Shutdown()
}
