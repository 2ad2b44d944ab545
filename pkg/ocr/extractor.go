package ocr

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Extractor pulls the homework text out of an uploaded photo.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (string, error)
}

// sampleTexts are the canned extraction results the mock cycles through,
// one for each kind of assignment the tutor handles.
var sampleTexts = []string{
	"Solve: 2x + 3 = 7",
	"What is photosynthesis?",
	"Write an essay about climate change",
	"Summarize the main points of this article",
	"Calculate the area of a triangle with base 5 and height 8",
	"Explain the water cycle",
}

// MockExtractor stands in for a real OCR backend. It ignores the image and
// returns one of the sample texts after a short artificial delay.
type MockExtractor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockExtractor() *MockExtractor {
	return &MockExtractor{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (e *MockExtractor) Extract(ctx context.Context, image []byte) (string, error) {
	select {
	case <-time.After(200 * time.Millisecond):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return sampleTexts[e.rng.Intn(len(sampleTexts))], nil
}
