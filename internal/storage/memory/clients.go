package memory

import (
	"github.com/yndnr/sealslot-go/internal/core/domain"
	"github.com/yndnr/sealslot-go/pkg/cmap"
)

// ClientStore provides in-memory storage for client identities.
type ClientStore struct {
	clients *cmap.Map[string, domain.ClientIdentity]
}

// NewClientStore creates a new client store.
func NewClientStore() *ClientStore {
	return &ClientStore{
		clients: cmap.New[string, domain.ClientIdentity](),
	}
}

// Insert stores id under its token. It returns false and leaves the store
// unchanged if the token is already taken.
func (s *ClientStore) Insert(id domain.ClientIdentity) bool {
	return s.clients.SetIfAbsent(id.Token, id)
}

// Get looks up an identity by token.
func (s *ClientStore) Get(token string) (domain.ClientIdentity, bool) {
	return s.clients.Get(token)
}

// Count returns the number of stored identities.
func (s *ClientStore) Count() int {
	return s.clients.Count()
}
