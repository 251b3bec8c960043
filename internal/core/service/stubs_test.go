package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs shared across the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User // keyed by UUID
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "id-" + strconv.Itoa(r.nextID)
	r.users[copy.UUID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.UUID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.UUID == user.UUID {
			continue
		}
		if u.Username == user.Username {
			return nil, domain.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	updated := cloneUser(user)
	updated.ID = existing.ID
	r.users[user.UUID] = cloneUser(updated)
	return updated, nil
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

func (r *stubUserRepo) FindByUUID(_ context.Context, uuid string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[uuid]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) DeleteByUUID(_ context.Context, uuid string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[uuid]; !ok {
		return 0, nil
	}
	delete(r.users, uuid)
	return 1, nil
}

type stubRoleRepo struct {
	roles map[string]*domain.Role
}

func newStubRoleRepo(names ...string) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.Role)}
	for i, name := range names {
		r.roles[name] = &domain.Role{ID: strconv.Itoa(i + 1), UUID: "role-" + name, Name: name}
	}
	return r
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	clone := *role
	r.roles[role.Name] = &clone
	return &clone, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	if role, ok := r.roles[name]; ok {
		clone := *role
		return &clone, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	_, ok := r.roles[name]
	return ok, nil
}

type stubProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile // keyed by user UUID
	fail     error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	if _, ok := r.profiles[p.UserUUID]; ok {
		return nil, domain.ErrProfileExists
	}
	clone := *p
	r.profiles[p.UserUUID] = &clone
	return &clone, nil
}

func (r *stubProfileRepo) FindByUserUUID(_ context.Context, userUUID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userUUID]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProfileNotFound
}

// stubHasher reversibly tags passwords so tests can assert hashing happened
// without paying for bcrypt.
type stubHasher struct{}

func (stubHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (stubHasher) Verify(plain, hash string) bool { return hash == "hashed:"+plain }

type stubCompromised struct {
	passwords map[string]bool
	err       error
}

func (c *stubCompromised) IsCompromised(_ context.Context, plain string) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.passwords[plain], nil
}

// recordingBus captures published events synchronously.
type recordingBus struct {
	mu     sync.Mutex
	events []domain.UserCreated
}

func (b *recordingBus) Publish(evt domain.UserCreated) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
}

func (b *recordingBus) Subscribe(_ ports.UserCreatedHandler) {}

func (b *recordingBus) published() []domain.UserCreated {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.UserCreated(nil), b.events...)
}

// stubUserService backs the token service tests with a fixed directory.
type stubUserService struct {
	principals map[string]*domain.Principal // keyed by UUID
}

func (s *stubUserService) Register(context.Context, ports.RegisterInput) (*domain.Principal, error) {
	panic("not used")
}

func (s *stubUserService) Update(context.Context, string, ports.UpdateInput) (*domain.Principal, error) {
	panic("not used")
}

func (s *stubUserService) Delete(context.Context, string) error { panic("not used") }

func (s *stubUserService) LoadByUsername(context.Context, string) (*domain.Principal, error) {
	panic("not used")
}

func (s *stubUserService) LoadByUUID(_ context.Context, uuid string) (*domain.Principal, error) {
	if p, ok := s.principals[uuid]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}
