package session

import (
	"context"
	"errors"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type fakeStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

type fakeKeyer struct{}

func (fakeKeyer) AccessSessionKey(accessID string) string {
	return "winelog:session:access:" + accessID
}

func testManager() (*Manager, *fakeStore) {
	store := newFakeStore()
	return &Manager{store: store, keyer: fakeKeyer{}, ttl: time.Hour}, store
}

func TestGenerateStoresToken(t *testing.T) {
	mgr, store := testManager()
	accessID := NewAccessID()

	token, err := mgr.Generate(context.Background(), accessID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	key := fakeKeyer{}.AccessSessionKey(accessID)
	if store.values[key] != token {
		t.Fatalf("expected stored token %q, got %q", token, store.values[key])
	}
	if store.ttls[key] != time.Hour {
		t.Fatalf("expected hour ttl, got %s", store.ttls[key])
	}
}

func TestRotateSwapsSession(t *testing.T) {
	mgr, store := testManager()
	oldID := NewAccessID()
	token, err := mgr.Generate(context.Background(), oldID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	newID, newToken, err := mgr.Rotate(context.Background(), oldID, token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if newID == oldID {
		t.Fatal("expected fresh access id")
	}
	if newToken == token {
		t.Fatal("expected fresh refresh token")
	}

	if _, ok := store.values[fakeKeyer{}.AccessSessionKey(oldID)]; ok {
		t.Fatal("expected old session to be deleted")
	}
	if store.values[fakeKeyer{}.AccessSessionKey(newID)] != newToken {
		t.Fatal("expected new session to be stored")
	}
}

func TestRotateRejectsWrongToken(t *testing.T) {
	mgr, _ := testManager()
	accessID := NewAccessID()
	if _, err := mgr.Generate(context.Background(), accessID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, _, err := mgr.Rotate(context.Background(), accessID, "not-the-token")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRotateRejectsMissingSession(t *testing.T) {
	mgr, _ := testManager()
	_, _, err := mgr.Rotate(context.Background(), NewAccessID(), "anything")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRevokeAndHasSession(t *testing.T) {
	mgr, _ := testManager()
	accessID := NewAccessID()
	if _, err := mgr.Generate(context.Background(), accessID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	active, err := mgr.HasSession(context.Background(), accessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !active {
		t.Fatal("expected active session")
	}

	if err := mgr.Revoke(context.Background(), accessID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	active, err = mgr.HasSession(context.Background(), accessID)
	if err != nil {
		t.Fatalf("has session after revoke: %v", err)
	}
	if active {
		t.Fatal("expected revoked session to be inactive")
	}
}
