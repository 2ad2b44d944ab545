package memory

import (
	"errors"
	"time"

	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrGuestSessionExists is returned when a guest who already owns a session
// attempts to create another one. Guests are limited to a single session.
var ErrGuestSessionExists = errors.New("guest already has an active session")

type guestState struct {
	Session  *entity.ChatSession
	Messages []*entity.ChatMessage
	Progress map[constant.Subject]*entity.UserProgress
}

// GuestRepository keeps the full state of anonymous users in memory. Nothing
// a guest does touches the database; the cache TTL is the lifetime of a
// guest's work.
type GuestRepository struct {
	cache *cache.Cache
}

func NewGuestRepository() *GuestRepository {
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &GuestRepository{
		cache: c,
	}
}

func (r *GuestRepository) state(guestID string) (*guestState, bool) {
	if x, found := r.cache.Get(guestID); found {
		return x.(*guestState), true
	}
	return nil, false
}

// CreateSession stores the guest's session, enforcing the one-session limit.
// The previous session must be deleted before a new one can be created.
func (r *GuestRepository) CreateSession(guestID string, session *entity.ChatSession) error {
	if st, found := r.state(guestID); found && st.Session != nil {
		return ErrGuestSessionExists
	}
	r.cache.Set(guestID, &guestState{
		Session:  session,
		Progress: make(map[constant.Subject]*entity.UserProgress),
	}, cache.DefaultExpiration)
	return nil
}

func (r *GuestRepository) GetSession(guestID string) (*entity.ChatSession, bool) {
	st, found := r.state(guestID)
	if !found || st.Session == nil {
		return nil, false
	}
	return st.Session, true
}

func (r *GuestRepository) UpdateSession(guestID string, session *entity.ChatSession) {
	st, found := r.state(guestID)
	if !found {
		return
	}
	st.Session = session
	r.cache.Set(guestID, st, cache.DefaultExpiration)
}

// DeleteSession drops the guest's session and its messages. Progress counters
// survive so a guest who starts over does not lose their streak.
func (r *GuestRepository) DeleteSession(guestID string) {
	st, found := r.state(guestID)
	if !found {
		return
	}
	st.Session = nil
	st.Messages = nil
	r.cache.Set(guestID, st, cache.DefaultExpiration)
}

func (r *GuestRepository) AppendMessage(guestID string, message *entity.ChatMessage) {
	st, found := r.state(guestID)
	if !found {
		return
	}
	st.Messages = append(st.Messages, message)
	r.cache.Set(guestID, st, cache.DefaultExpiration)
}

func (r *GuestRepository) RemoveMessage(guestID string, messageID string) {
	st, found := r.state(guestID)
	if !found {
		return
	}
	kept := st.Messages[:0]
	for _, m := range st.Messages {
		if m.Id.String() != messageID {
			kept = append(kept, m)
		}
	}
	st.Messages = kept
	r.cache.Set(guestID, st, cache.DefaultExpiration)
}

func (r *GuestRepository) Messages(guestID string) []*entity.ChatMessage {
	st, found := r.state(guestID)
	if !found {
		return nil
	}
	out := make([]*entity.ChatMessage, len(st.Messages))
	copy(out, st.Messages)
	return out
}

// BumpProgress updates the in-memory counters for a guest.
func (r *GuestRepository) BumpProgress(guestID string, subject constant.Subject, action constant.ProgressAction) {
	st, found := r.state(guestID)
	if !found {
		st = &guestState{Progress: make(map[constant.Subject]*entity.UserProgress)}
	}
	if st.Progress == nil {
		st.Progress = make(map[constant.Subject]*entity.UserProgress)
	}
	p, ok := st.Progress[subject]
	if !ok {
		p = &entity.UserProgress{Subject: subject}
		if uid, err := uuid.Parse(guestID); err == nil {
			p.UserId = uid
		}
		st.Progress[subject] = p
	}
	p.Bump(action, time.Now())
	r.cache.Set(guestID, st, cache.DefaultExpiration)
}

func (r *GuestRepository) Progress(guestID string) []*entity.UserProgress {
	st, found := r.state(guestID)
	if !found {
		return nil
	}
	out := make([]*entity.UserProgress, 0, len(st.Progress))
	for _, p := range st.Progress {
		out = append(out, p)
	}
	return out
}
