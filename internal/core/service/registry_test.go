package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yndnr/sealslot-go/internal/core/domain"
	"github.com/yndnr/sealslot-go/internal/storage/memory"
)

func TestRegistryService_Register(t *testing.T) {
	reg := NewRegistryService(memory.NewClientStore())
	ctx := context.Background()

	id, err := reg.Register(ctx)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := uuid.Parse(id.Token); err != nil {
		t.Errorf("Register() token %q is not a UUID: %v", id.Token, err)
	}
	if len(id.Secret) != 64 {
		t.Errorf("Register() secret length = %d, want 64", len(id.Secret))
	}
	if id.CreatedAt == 0 {
		t.Error("Register() CreatedAt should be set")
	}

	got, err := reg.Authenticate(ctx, id.Token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got != id {
		t.Errorf("Authenticate() = %+v, want %+v", got, id)
	}
	if n := reg.Count(); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestRegistryService_RegisterDistinct(t *testing.T) {
	reg := NewRegistryService(memory.NewClientStore())
	ctx := context.Background()

	tokens := make(map[string]bool)
	secrets := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := reg.Register(ctx)
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if tokens[id.Token] || secrets[id.Secret] {
			t.Fatalf("Register() returned duplicate identity %+v", id)
		}
		tokens[id.Token] = true
		secrets[id.Secret] = true
	}
}

func TestRegistryService_RegisterRetriesCollision(t *testing.T) {
	reg := NewRegistryService(memory.NewClientStore())
	fixed := uuid.NewString()
	calls := 0
	reg.newToken = func() (string, error) {
		calls++
		if calls <= 2 {
			return fixed, nil
		}
		return uuid.NewString(), nil
	}

	first, err := reg.Register(context.Background())
	if err != nil || first.Token != fixed {
		t.Fatalf("Register() = %+v, %v", first, err)
	}

	second, err := reg.Register(context.Background())
	if err != nil {
		t.Fatalf("Register() after collision error = %v", err)
	}
	if second.Token == fixed {
		t.Error("Register() reused a colliding token")
	}
	if calls != 3 {
		t.Errorf("token generator calls = %d, want 3", calls)
	}
}

func TestRegistryService_RegisterRandomFailure(t *testing.T) {
	reg := NewRegistryService(memory.NewClientStore())
	reg.newSecret = func() (string, error) { return "", errors.New("entropy exhausted") }

	_, err := reg.Register(context.Background())
	if !errors.Is(err, domain.ErrInternalServer) {
		t.Errorf("Register() error = %v, want %v", err, domain.ErrInternalServer)
	}
	if reg.Count() != 0 {
		t.Error("failed Register() should not store an identity")
	}
}

func TestRegistryService_RegisterCollisionExhausted(t *testing.T) {
	reg := NewRegistryService(memory.NewClientStore())
	fixed := uuid.NewString()
	reg.newToken = func() (string, error) { return fixed, nil }

	if _, err := reg.Register(context.Background()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, err := reg.Register(context.Background())
	if !errors.Is(err, domain.ErrInternalServer) {
		t.Errorf("Register() error = %v, want %v", err, domain.ErrInternalServer)
	}
}

func TestRegistryService_Authenticate(t *testing.T) {
	reg := NewRegistryService(memory.NewClientStore())
	reg.now = func() time.Time { return time.UnixMilli(42) }
	id, _ := reg.Register(context.Background())

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"registered", id.Token, false},
		{"empty", "", true},
		{"malformed", "not-a-uuid", true},
		{"unknown uuid", uuid.NewString(), true},
		{"secret as token", id.Secret, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Authenticate(context.Background(), tt.token)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnauthorized) {
					t.Errorf("Authenticate() error = %v, want %v", err, domain.ErrUnauthorized)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if got.CreatedAt != 42 {
				t.Errorf("CreatedAt = %d, want 42", got.CreatedAt)
			}
		})
	}
}
