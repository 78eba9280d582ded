package auth

import (
	"context"
	"log"
	"sync"
)

// Session tracks the authenticated user for the process. It starts in a
// loading state until the provider's first auth-state callback fires, then
// settles to authenticated or not. Init subscribes, Close unsubscribes;
// callers own the lifecycle instead of relying on an ambient singleton.
type Session struct {
	provider Provider

	mu      sync.RWMutex
	user    *User
	loading bool
	unsub   func()
}

func NewSession(provider Provider) *Session {
	return &Session{
		provider: provider,
		loading:  true,
	}
}

func (s *Session) Init() {
	s.unsub = s.provider.Subscribe(s.onAuthStateChanged)
}

func (s *Session) Close() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *Session) onAuthStateChanged(user *User) {
	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Login returns false on any provider rejection; the distinct causes are
// deliberately collapsed into one generic failure.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	if _, err := s.provider.SignIn(ctx, email, password); err != nil {
		log.Printf("login error: %v", err)
		return false
	}
	return true
}

func (s *Session) Logout(ctx context.Context) {
	if err := s.provider.SignOut(ctx); err != nil {
		log.Printf("logout error: %v", err)
	}
}

func (s *Session) Register(ctx context.Context, email, password, displayName string) bool {
	if _, err := s.provider.SignUp(ctx, email, password, displayName); err != nil {
		log.Printf("registration error: %v", err)
		return false
	}
	return true
}

func (s *Session) ResetPassword(ctx context.Context, email string) error {
	if err := s.provider.SendPasswordReset(ctx, email); err != nil {
		log.Printf("password reset error: %v", err)
		return err
	}
	return nil
}

func (s *Session) UpdateUserProfile(ctx context.Context, displayName string) error {
	s.mu.RLock()
	user := s.user
	s.mu.RUnlock()
	if user == nil {
		return nil
	}

	if err := s.provider.UpdateProfile(ctx, user.UID, displayName); err != nil {
		log.Printf("profile update error: %v", err)
		return err
	}

	s.mu.Lock()
	if s.user != nil && s.user.UID == user.UID {
		updated := *s.user
		updated.DisplayName = displayName
		s.user = &updated
	}
	s.mu.Unlock()
	return nil
}
