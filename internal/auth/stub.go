package auth

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/evenlines/storefront/internal/config"
	"github.com/evenlines/storefront/internal/validate"
	"github.com/google/uuid"
)

type stubRecord struct {
	user *User
	hash []byte
}

// StubProvider stands in for the external identity provider. Registered
// accounts keep bcrypt-hashed passwords and are verified on sign-in;
// unknown credentials are accepted and a synthetic user fabricated, which
// preserves the storefront-preview behavior of the real site.
type StubProvider struct {
	cfg config.IdentityConfig

	mu      sync.RWMutex
	users   map[string]*stubRecord // keyed by email
	current *User
	subs    map[int]func(*User)
	nextSub int
}

func NewStubProvider(cfg config.IdentityConfig) *StubProvider {
	log.Printf("identity provider configured for project %s (%s)", cfg.ProjectID, cfg.AuthDomain)
	return &StubProvider{
		cfg:   cfg,
		users: make(map[string]*stubRecord),
		subs:  make(map[int]func(*User)),
	}
}

func (p *StubProvider) SignIn(_ context.Context, email, password string) (*User, error) {
	if !validate.Email(email) || password == "" {
		return nil, ErrInvalidCredentials
	}

	p.mu.Lock()
	rec, registered := p.users[email]
	if registered && !VerifyPassword(rec.hash, password) {
		p.mu.Unlock()
		return nil, ErrInvalidCredentials
	}

	var user *User
	if registered {
		user = rec.user
	} else {
		user = fabricateUser(email)
	}
	p.current = user
	p.mu.Unlock()

	p.notify(user)
	return user, nil
}

func (p *StubProvider) SignUp(_ context.Context, email, password, displayName string) (*User, error) {
	if !validate.Email(email) || password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := fabricateUser(email)
	if displayName != "" {
		user.DisplayName = displayName
	}

	p.mu.Lock()
	p.users[email] = &stubRecord{user: user, hash: hash}
	p.current = user
	p.mu.Unlock()

	p.notify(user)
	return user, nil
}

func (p *StubProvider) SignOut(context.Context) error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()

	p.notify(nil)
	return nil
}

func (p *StubProvider) SendPasswordReset(_ context.Context, email string) error {
	if !validate.Email(email) {
		return ErrInvalidEmail
	}
	// No mail is sent; the provider would handle delivery.
	log.Printf("password reset requested for %s", email)
	return nil
}

func (p *StubProvider) UpdateProfile(_ context.Context, uid, displayName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, rec := range p.users {
		if rec.user.UID == uid {
			rec.user.DisplayName = displayName
			break
		}
	}
	if p.current != nil && p.current.UID == uid {
		p.current.DisplayName = displayName
	}
	return nil
}

func (p *StubProvider) Subscribe(fn func(*User)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	current := p.current
	p.mu.Unlock()

	// Initial state callback, like the SDK's auth-state listener
	fn(current)

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *StubProvider) notify(user *User) {
	p.mu.RLock()
	fns := make([]func(*User), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.RUnlock()

	for _, fn := range fns {
		fn(user)
	}
}

func fabricateUser(email string) *User {
	name := email
	if i := strings.Index(email, "@"); i > 0 {
		name = email[:i]
	}
	return &User{
		UID:           uuid.New().String(),
		Email:         email,
		DisplayName:   name,
		EmailVerified: false,
	}
}
