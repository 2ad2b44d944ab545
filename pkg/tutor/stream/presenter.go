package stream

import (
	"math/rand"
	"sync"
	"time"

	"ai-homework-helper-be/internal/constant"
)

// Draft is the in-memory state of an assistant response being revealed.
// Content is always a prefix of the final text.
type Draft struct {
	Content    string
	Mode       constant.Mode
	IsComplete bool
}

// Sink receives a Draft snapshot on every reveal tick (and on Reset).
// It runs under the presenter lock and must not call back into it.
type Sink func(Draft)

// Handle tracks one reveal run. Done is closed when the full text has been
// revealed; a cancelled run never closes it.
type Handle struct {
	done chan struct{}
}

func (h *Handle) Done() <-chan struct{} {
	return h.done
}

type pacing struct {
	minChunk int
	maxChunk int
	minDelay time.Duration
	maxDelay time.Duration
}

type Option func(*Presenter)

// WithPacing overrides the reveal cadence. Tests use a zero-delay pacing.
func WithPacing(minChunk, maxChunk int, minDelay, maxDelay time.Duration) Option {
	return func(p *Presenter) {
		p.pacing = pacing{minChunk, maxChunk, minDelay, maxDelay}
	}
}

// Presenter manufactures the incremental "typing" reveal over an already
// complete response text. At most one reveal is active at a time: starting
// a new one, or calling Reset, invalidates the previous run's generation so
// its next tick becomes a no-op. Pacing mirrors the original UI behavior
// (1-4 characters every 10-20ms).
type Presenter struct {
	mu         sync.Mutex
	generation uint64
	draft      Draft
	sink       Sink
	rng        *rand.Rand
	pacing     pacing
}

func NewPresenter(sink Sink, opts ...Option) *Presenter {
	p := &Presenter{
		sink: sink,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		pacing: pacing{
			minChunk: 1,
			maxChunk: 4,
			minDelay: 10 * time.Millisecond,
			maxDelay: 20 * time.Millisecond,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins revealing fullText, cancelling any reveal in progress.
func (p *Presenter) Start(fullText string, mode constant.Mode) *Handle {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.draft = Draft{Mode: mode}
	p.emitLocked()
	p.mu.Unlock()

	handle := &Handle{done: make(chan struct{})}
	go p.reveal(gen, fullText, mode, handle)
	return handle
}

// Reset halts any in-flight reveal and clears the draft. Safe to call at
// any time, including when nothing is running, and safe to call twice.
func (p *Presenter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.draft = Draft{}
	p.emitLocked()
}

// Snapshot returns the current draft state.
func (p *Presenter) Snapshot() Draft {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

func (p *Presenter) reveal(gen uint64, fullText string, mode constant.Mode, handle *Handle) {
	runes := []rune(fullText)
	if len(runes) == 0 {
		p.mu.Lock()
		if p.generation == gen {
			p.draft = Draft{Mode: mode, IsComplete: true}
			p.emitLocked()
		}
		alive := p.generation == gen
		p.mu.Unlock()
		if alive {
			close(handle.done)
		}
		return
	}
	shown := 0

	for shown < len(runes) {
		p.mu.Lock()
		if p.generation != gen {
			// Reset or a newer reveal happened; this run is dead.
			p.mu.Unlock()
			return
		}
		shown += p.chunkSizeLocked()
		if shown > len(runes) {
			shown = len(runes)
		}
		p.draft = Draft{
			Content:    string(runes[:shown]),
			Mode:       mode,
			IsComplete: shown == len(runes),
		}
		delay := p.delayLocked()
		p.emitLocked()
		p.mu.Unlock()

		if shown < len(runes) {
			time.Sleep(delay)
		}
	}

	close(handle.done)
}

func (p *Presenter) chunkSizeLocked() int {
	if p.pacing.maxChunk <= p.pacing.minChunk {
		return p.pacing.minChunk
	}
	return p.pacing.minChunk + p.rng.Intn(p.pacing.maxChunk-p.pacing.minChunk+1)
}

func (p *Presenter) delayLocked() time.Duration {
	if p.pacing.maxDelay <= p.pacing.minDelay {
		return p.pacing.minDelay
	}
	return p.pacing.minDelay + time.Duration(p.rng.Int63n(int64(p.pacing.maxDelay-p.pacing.minDelay)))
}

func (p *Presenter) emitLocked() {
	if p.sink != nil {
		p.sink(p.draft)
	}
}
