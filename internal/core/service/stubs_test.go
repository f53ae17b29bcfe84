package service

import (
	"context"
	"fmt"

	"github.com/utilibill/billing-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests. They mirror the
// real Mongo repositories' behavior, including duplicate-key mapping.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Exists(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUsernameTaken
	}
	r.seq++
	clone := *user
	clone.ID = fmt.Sprintf("u%d", r.seq)
	r.users[clone.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubCustomerRepo struct {
	customers map[string]*domain.Customer
	seq       int
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[string]*domain.Customer)}
}

func (r *stubCustomerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCustomerRepo) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	for _, c := range r.customers {
		if c.Email == customer.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	clone := *customer
	clone.ID = fmt.Sprintf("c%d", r.seq)
	r.customers[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) FindByUserID(_ context.Context, userID string) (*domain.Customer, error) {
	for _, c := range r.customers {
		if c.UserID != "" && c.UserID == userID {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *stubCustomerRepo) FindAll(_ context.Context) ([]*domain.Customer, error) {
	out := make([]*domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

type stubBillRepo struct {
	bills []*domain.Bill
	seq   int
}

func newStubBillRepo() *stubBillRepo {
	return &stubBillRepo{}
}

func (r *stubBillRepo) Create(_ context.Context, bill *domain.Bill) (*domain.Bill, error) {
	r.seq++
	clone := *bill
	clone.ID = fmt.Sprintf("b%d", r.seq)
	r.bills = append(r.bills, &clone)
	out := clone
	return &out, nil
}

func (r *stubBillRepo) FindAll(_ context.Context) ([]*domain.Bill, error) {
	out := make([]*domain.Bill, 0, len(r.bills))
	for _, b := range r.bills {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBillRepo) FindByCustomerID(_ context.Context, customerID string) ([]*domain.Bill, error) {
	var out []*domain.Bill
	for _, b := range r.bills {
		if b.CustomerID == customerID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBillRepo) DeleteByCustomerID(_ context.Context, customerID string) (int64, error) {
	var kept []*domain.Bill
	var removed int64
	for _, b := range r.bills {
		if b.CustomerID == customerID {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	r.bills = kept
	return removed, nil
}

type stubSessionStore struct {
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, session *domain.Session) error {
	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

// stubTx runs the unit of work directly; the stub repos have no real
// transaction semantics to enforce.
type stubTx struct{}

func (stubTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func adminSession() *domain.Session {
	return &domain.Session{ID: "s-admin", UserID: "u-admin", Username: "root", Role: domain.RoleAdmin}
}

func customerSession(userID string) *domain.Session {
	return &domain.Session{ID: "s-" + userID, UserID: userID, Username: "cust-" + userID, Role: domain.RoleCustomer}
}
