package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yndnr/sealslot-go/internal/core/domain"
	"github.com/yndnr/sealslot-go/pkg/token"
)

// maxTokenAttempts bounds retries on a token collision.
const maxTokenAttempts = 8

var errTokenSpace = errors.New("token collision retries exhausted")

// ClientRepository defines the storage interface for client identities.
type ClientRepository interface {
	// Insert stores id if its token is unused and reports whether it did.
	Insert(id domain.ClientIdentity) bool

	// Get looks up an identity by token.
	Get(token string) (domain.ClientIdentity, bool)

	// Count returns the number of stored identities.
	Count() int
}

// RegistryService issues client identities and resolves tokens to them.
type RegistryService struct {
	repo      ClientRepository
	newToken  func() (string, error)
	newSecret func() (string, error)
	now       func() time.Time
}

// NewRegistryService creates a new RegistryService.
func NewRegistryService(repo ClientRepository) *RegistryService {
	return &RegistryService{
		repo:      repo,
		newToken:  newUUIDToken,
		newSecret: token.GenerateSecret,
		now:       time.Now,
	}
}

func newUUIDToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Register creates and stores a new identity with a fresh token and secret.
// It fails only if the random source fails.
func (s *RegistryService) Register(_ context.Context) (domain.ClientIdentity, error) {
	secret, err := s.newSecret()
	if err != nil {
		return domain.ClientIdentity{}, domain.ErrInternalServer.WithCause(err)
	}

	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		tok, err := s.newToken()
		if err != nil {
			return domain.ClientIdentity{}, domain.ErrInternalServer.WithCause(err)
		}

		id := domain.ClientIdentity{
			Token:     tok,
			Secret:    secret,
			CreatedAt: s.now().UnixMilli(),
		}
		if s.repo.Insert(id) {
			return id, nil
		}
	}

	return domain.ClientIdentity{}, domain.ErrInternalServer.WithCause(errTokenSpace)
}

// Authenticate resolves tok to its identity. Empty, malformed and unknown
// tokens all yield ErrUnauthorized.
func (s *RegistryService) Authenticate(_ context.Context, tok string) (domain.ClientIdentity, error) {
	if tok == "" {
		return domain.ClientIdentity{}, domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(tok); err != nil {
		return domain.ClientIdentity{}, domain.ErrUnauthorized.WithDetails("malformed token")
	}

	id, ok := s.repo.Get(tok)
	if !ok {
		return domain.ClientIdentity{}, domain.ErrUnauthorized
	}
	return id, nil
}

// Count returns the number of registered clients.
func (s *RegistryService) Count() int {
	return s.repo.Count()
}
