package api

import (
	"context"
	"sync"
	"time"

	"github.com/akarpov/finlog/db"
	"github.com/akarpov/finlog/models"
)

// memStore is an in-memory Store used by the handler tests. It mirrors the
// error contract of db.Storage, including ErrNotFound on writes that race a
// delete.
type memStore struct {
	mu           sync.Mutex
	users        map[string]*db.Credentials
	byEmail      map[string]string
	transactions map[string]models.Transaction
}

var _ Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[string]*db.Credentials),
		byEmail:      make(map[string]string),
		transactions: make(map[string]models.Transaction),
	}
}

func (m *memStore) CreateUser(_ context.Context, u models.User, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[u.Email]; exists {
		return db.ErrEmailTaken
	}
	m.users[u.ID] = &db.Credentials{User: u, PasswordHash: passwordHash}
	m.byEmail[u.Email] = u.ID
	return nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, db.ErrNotFound
	}
	creds := *m.users[id]
	return &creds, nil
}

func (m *memStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	creds, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	u := creds.User
	return &u, nil
}

// deleteUser removes a user out-of-band, simulating an admin deletion after
// token issuance.
func (m *memStore) deleteUser(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if creds, ok := m.users[id]; ok {
		delete(m.byEmail, creds.User.Email)
		delete(m.users, id)
	}
}

func (m *memStore) CreateTransaction(_ context.Context, t *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.CreatedAt = time.Now()
	m.transactions[t.ID] = *t
	return nil
}

func (m *memStore) GetTransaction(_ context.Context, id string) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &t, nil
}

func (m *memStore) ListTransactions(_ context.Context, f db.TransactionFilter) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Transaction{}
	for _, t := range m.transactions {
		if f.OwnerID != "" && t.UserID != f.OwnerID {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memStore) UpdateTransaction(_ context.Context, t *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[t.ID]; !ok {
		return db.ErrNotFound
	}
	m.transactions[t.ID] = *t
	return nil
}

func (m *memStore) DeleteTransaction(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *memStore) Ping(context.Context) error { return nil }
