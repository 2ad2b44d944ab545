package stream

import (
	"strings"
	"sync"
	"testing"
	"time"

	"ai-homework-helper-be/internal/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	drafts []Draft
}

func (r *recorder) sink(d Draft) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts = append(r.drafts, d)
}

func (r *recorder) all() []Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Draft, len(r.drafts))
	copy(out, r.drafts)
	return out
}

func fastPacing() Option {
	return WithPacing(1, 3, 0, 0)
}

func TestRevealIsMonotonicPrefixSequence(t *testing.T) {
	rec := &recorder{}
	p := NewPresenter(rec.sink, fastPacing())

	const fullText = "Here's a hint: try moving the 3 to the other side first! ✨"
	handle := p.Start(fullText, constant.ModeHint)

	select {
	case <-handle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("reveal did not complete")
	}

	drafts := rec.all()
	require.NotEmpty(t, drafts)

	prevLen := -1
	for _, d := range drafts {
		assert.True(t, strings.HasPrefix(fullText, d.Content), "content %q is not a prefix", d.Content)
		assert.Greater(t, len(d.Content), prevLen)
		prevLen = len(d.Content)
	}

	last := drafts[len(drafts)-1]
	assert.Equal(t, fullText, last.Content)
	assert.True(t, last.IsComplete)
	assert.Equal(t, constant.ModeHint, last.Mode)
}

func TestRevealEmptyTextCompletesImmediately(t *testing.T) {
	rec := &recorder{}
	p := NewPresenter(rec.sink, fastPacing())

	handle := p.Start("", constant.ModeChat)

	select {
	case <-handle.Done():
	case <-time.After(time.Second):
		t.Fatal("reveal did not complete")
	}

	assert.True(t, p.Snapshot().IsComplete)
	assert.Equal(t, "", p.Snapshot().Content)
}

func TestResetHaltsInFlightReveal(t *testing.T) {
	rec := &recorder{}
	// Slow pacing so Reset lands mid-reveal.
	p := NewPresenter(rec.sink, WithPacing(1, 1, 20*time.Millisecond, 30*time.Millisecond))

	handle := p.Start(strings.Repeat("abcdefgh ", 50), constant.ModePractice)
	time.Sleep(60 * time.Millisecond)
	p.Reset()

	snap := p.Snapshot()
	assert.Equal(t, "", snap.Content)
	assert.False(t, snap.IsComplete)

	// The cancelled run must never complete nor tick again.
	ticksAtReset := len(rec.all())
	select {
	case <-handle.Done():
		t.Fatal("cancelled reveal reported completion")
	case <-time.After(150 * time.Millisecond):
	}
	assert.Equal(t, ticksAtReset, len(rec.all()))
}

func TestResetIsIdempotentAndSafeWhenIdle(t *testing.T) {
	p := NewPresenter(nil, fastPacing())
	p.Reset()
	p.Reset()
	assert.Equal(t, Draft{}, p.Snapshot())
}

func TestStartCancelsPreviousReveal(t *testing.T) {
	rec := &recorder{}
	p := NewPresenter(rec.sink, WithPacing(1, 1, 20*time.Millisecond, 30*time.Millisecond))

	first := p.Start(strings.Repeat("first ", 100), constant.ModeHint)
	time.Sleep(50 * time.Millisecond)

	second := p.Start("short", constant.ModeQuiz)

	select {
	case <-second.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("second reveal did not complete")
	}

	select {
	case <-first.Done():
		t.Fatal("first reveal should have been cancelled")
	default:
	}

	snap := p.Snapshot()
	assert.Equal(t, "short", snap.Content)
	assert.Equal(t, constant.ModeQuiz, snap.Mode)
	assert.True(t, snap.IsComplete)
}
