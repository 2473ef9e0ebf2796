package client

import "sync"

// Session holds the bearer token of one signed-in user. It is created by
// the caller and handed to the client; onChange (optional) is invoked
// whenever the token is set or cleared, e.g. to persist it.
type Session struct {
	mu       sync.RWMutex
	token    string
	onChange func(token string)
}

func NewSession(token string, onChange func(token string)) *Session {
	return &Session{token: token, onChange: onChange}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) LoggedIn() bool { return s.Token() != "" }

func (s *Session) Set(token string) {
	s.mu.Lock()
	s.token = token
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(token)
	}
}

// Clear forgets the token.
func (s *Session) Clear() { s.Set("") }
