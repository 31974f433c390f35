package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/premios/awards-api/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository keyed by ID.
type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	if u.ActivationToken != nil {
		t := *u.ActivationToken
		clone.ActivationToken = &t
	}
	if u.ResetToken != nil {
		t := *u.ResetToken
		clone.ResetToken = &t
	}
	if u.ResetTokenExpiry != nil {
		t := *u.ResetTokenExpiry
		clone.ResetTokenExpiry = &t
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("u%d", r.seq)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByActivationToken(_ context.Context, token string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ActivationToken != nil && *u.ActivationToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByResetToken(_ context.Context, token string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

// stubRefreshRepo is an in-memory RefreshTokenRepository. Replace is atomic
// under the mutex, matching the single-operation guarantee of the real store.
type stubRefreshRepo struct {
	mu     sync.Mutex
	seq    int
	byUser map[string]*domain.RefreshToken
}

func newStubRefreshRepo() *stubRefreshRepo {
	return &stubRefreshRepo{byUser: make(map[string]*domain.RefreshToken)}
}

func (r *stubRefreshRepo) Replace(_ context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	clone := *token
	clone.ID = fmt.Sprintf("t%d", r.seq)
	r.byUser[token.UserID] = &clone
	token.ID = clone.ID
	return nil
}

func (r *stubRefreshRepo) FindByToken(_ context.Context, token string) (*domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byUser {
		if t.Token == token {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrUnknownToken
}

func (r *stubRefreshRepo) DeleteByToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, t := range r.byUser {
		if t.Token == token {
			delete(r.byUser, userID)
			return nil
		}
	}
	return domain.ErrUnknownToken
}

// stubMailer records sent notifications and optionally fails every send.
type stubMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *stubMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// stubGuard is an in-memory ResetRequestGuard.
type stubGuard struct {
	recent map[string]bool
}

func newStubGuard() *stubGuard {
	return &stubGuard{recent: make(map[string]bool)}
}

func (g *stubGuard) RecentlyRequested(_ context.Context, email string) (bool, error) {
	return g.recent[email], nil
}

func (g *stubGuard) Mark(_ context.Context, email string) error {
	g.recent[email] = true
	return nil
}
