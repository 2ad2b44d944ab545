package transcript

import (
	"sync"
	"time"

	"ai-homework-helper-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Reconciler owns the cached view of session transcripts and keeps it
// consistent with the database through an optimistic append protocol.
//
// An append happens in three phases: the message is inserted into the cached
// transcript under a provisional identifier, the write is attempted against
// durable storage, and the provisional entry is then either confirmed with
// the persisted record or rolled back. The provisional identifier is the
// only key needed to finish either way, so callers never have to rescan the
// transcript to undo a failed write.
type Reconciler struct {
	mu      sync.Mutex
	cache   *cache.Cache
	pending map[uuid.UUID]string // provisional id -> session id
}

func NewReconciler() *Reconciler {
	return &Reconciler{
		cache:   cache.New(30*time.Minute, 10*time.Minute),
		pending: make(map[uuid.UUID]string),
	}
}

// Prime seeds the cached transcript for a session, typically after loading
// it from storage. The slice is copied.
func (r *Reconciler) Prime(sessionID string, messages []*entity.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]*entity.ChatMessage, len(messages))
	copy(copied, messages)
	r.cache.Set(sessionID, copied, cache.DefaultExpiration)
}

// Transcript returns the cached transcript for a session. The second return
// is false when the session has not been primed or the entry expired.
func (r *Reconciler) Transcript(sessionID string) ([]*entity.ChatMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	messages, found := r.transcript(sessionID)
	if !found {
		return nil, false
	}
	out := make([]*entity.ChatMessage, len(messages))
	copy(out, messages)
	return out, true
}

// AppendOptimistic inserts the message into the cached transcript before any
// durable write happens and returns the provisional identifier used to track
// it. The message's Id field is overwritten with that identifier.
func (r *Reconciler) AppendOptimistic(sessionID string, message *entity.ChatMessage) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	provisional := uuid.New()
	message.Id = provisional
	messages, _ := r.transcript(sessionID)
	r.cache.Set(sessionID, append(messages, message), cache.DefaultExpiration)
	r.pending[provisional] = sessionID
	return provisional
}

// Confirm replaces the provisional entry with the persisted record, keeping
// its position in the transcript. Confirming an unknown identifier is a
// no-op; the entry may have expired with its session.
func (r *Reconciler) Confirm(provisional uuid.UUID, persisted *entity.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessionID, ok := r.pending[provisional]
	if !ok {
		return
	}
	delete(r.pending, provisional)
	messages, found := r.transcript(sessionID)
	if !found {
		return
	}
	for i, m := range messages {
		if m.Id == provisional {
			messages[i] = persisted
			break
		}
	}
	r.cache.Set(sessionID, messages, cache.DefaultExpiration)
}

// Rollback removes the provisional entry after a failed write. Only the
// provisional identifier is consulted; the rest of the transcript, including
// entries appended after this one, is left untouched.
func (r *Reconciler) Rollback(provisional uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessionID, ok := r.pending[provisional]
	if !ok {
		return
	}
	delete(r.pending, provisional)
	messages, found := r.transcript(sessionID)
	if !found {
		return
	}
	kept := messages[:0]
	for _, m := range messages {
		if m.Id != provisional {
			kept = append(kept, m)
		}
	}
	r.cache.Set(sessionID, kept, cache.DefaultExpiration)
}

// Invalidate drops the cached transcript for a session, forcing the next
// read to go back to storage.
func (r *Reconciler) Invalidate(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(sessionID)
	for id, sid := range r.pending {
		if sid == sessionID {
			delete(r.pending, id)
		}
	}
}

func (r *Reconciler) transcript(sessionID string) ([]*entity.ChatMessage, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.([]*entity.ChatMessage), true
	}
	return nil, false
}
