package article

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn    func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn func(ctx context.Context, key string) (map[string]string, error)
	delFn     func(ctx context.Context, key string) error
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

var testID = uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
