package lightbox

import (
	"sync"
	"time"

	"github.com/adampresley/yearinreview/pkg/models"
	"github.com/google/uuid"
)

const (
	DefaultSessionMaxAge = 24 * time.Hour
)

type SessionStorer interface {
	Get(id string) (models.LightboxState, bool)
	NewID() string
	Put(state models.LightboxState)
	Delete(id string)
	Len() int
}

type SessionStoreConfig struct {
	MaxAge time.Duration
	Now    func() time.Time
}

type storedSession struct {
	state   models.LightboxState
	touched time.Time
}

/*
SessionStore keeps open lightbox sessions in memory, keyed by a random id.
Sessions untouched for MaxAge are dropped the next time anything is stored.
*/
type SessionStore struct {
	maxAge   time.Duration
	mu       *sync.Mutex
	now      func() time.Time
	sessions map[string]storedSession
}

func NewSessionStore(config SessionStoreConfig) SessionStore {
	if config.MaxAge <= 0 {
		config.MaxAge = DefaultSessionMaxAge
	}

	if config.Now == nil {
		config.Now = time.Now
	}

	return SessionStore{
		maxAge:   config.MaxAge,
		mu:       &sync.Mutex{},
		now:      config.Now,
		sessions: map[string]storedSession{},
	}
}

func (s SessionStore) Get(id string) (models.LightboxState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[id]
	if !ok || s.expired(stored) {
		return models.LightboxState{}, false
	}

	return copyState(stored.state), true
}

/*
NewID returns an id no stored session is using.
*/
func (s SessionStore) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		id := uuid.NewString()

		if _, taken := s.sessions[id]; !taken {
			return id
		}
	}
}

func (s SessionStore) Put(state models.LightboxState) {
	if state.ID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, stored := range s.sessions {
		if s.expired(stored) {
			delete(s.sessions, id)
		}
	}

	s.sessions[state.ID] = storedSession{
		state:   copyState(state),
		touched: s.now(),
	}
}

func (s SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

func (s SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func (s SessionStore) expired(stored storedSession) bool {
	return s.now().Sub(stored.touched) > s.maxAge
}

func copyState(state models.LightboxState) models.LightboxState {
	state.Images = append([]string(nil), state.Images...)
	state.Failed = append([]string(nil), state.Failed...)
	state.Delivered = append([]string(nil), state.Delivered...)
	state.Preloaded = append([]string(nil), state.Preloaded...)
	return state
}
