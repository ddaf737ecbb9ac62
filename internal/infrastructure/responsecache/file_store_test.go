package responsecache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/nba-lunar/internal/domain/apirequest"
	"github.com/riskibarqy/nba-lunar/internal/platform/logging"
)

func TestFileStore_StoreThenLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "json")
	store := NewFileStore(dir, logging.NewNop())
	d := apirequest.New(apirequest.EndpointTeamDetails, apirequest.ParamTeamID, "1610612747")

	if store.Exists(ctx, d) {
		t.Fatalf("expected empty cache")
	}
	body := []byte(`{"resultSets":[]}`)
	if err := store.Store(ctx, d, body); err != nil {
		t.Fatalf("store: %v", err)
	}
	if !store.Exists(ctx, d) {
		t.Fatalf("expected entry after store")
	}
	if _, err := os.Stat(filepath.Join(dir, d.Digest()+".json")); err != nil {
		t.Fatalf("expected digest named file: %v", err)
	}

	got, err := store.Load(ctx, d)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestFileStore_EntriesSurviveNewInstance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	d := apirequest.New(apirequest.EndpointPlayerGameLogs, apirequest.ParamSeason, "2021-22")

	if err := NewFileStore(dir, nil).Store(ctx, d, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("store: %v", err)
	}

	fresh := NewFileStore(dir, nil)
	if !fresh.Exists(ctx, d) {
		t.Fatalf("expected entry visible to a new process")
	}
	got, err := fresh.Load(ctx, d)
	if err != nil || string(got) != `{"a":1}` {
		t.Fatalf("unexpected load result %q err=%v", got, err)
	}
}

func TestFileStore_OverwriteOnRestore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(dir, nil)
	d := apirequest.New(apirequest.EndpointTeamGameLogs, apirequest.ParamSeason, "2020-21")

	if err := store.Store(ctx, d, []byte(`{"v":1}`)); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.Store(ctx, d, []byte(`{"v":2}`)); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got, err := store.Load(ctx, d)
	if err != nil || string(got) != `{"v":2}` {
		t.Fatalf("expected overwritten body, got %q err=%v", got, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single file without temp leftovers, got %d", len(entries))
	}
}

func TestFileStore_CorruptEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(dir, nil)
	d := apirequest.New(apirequest.EndpointTeamDetails, apirequest.ParamTeamID, "1")

	if err := os.WriteFile(store.Path(d), []byte(`{"truncated":`), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	_, err := store.Load(ctx, d)
	var corrupt *apirequest.CacheCorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected CacheCorruptError, got %v", err)
	}
	if corrupt.Digest != d.Digest() {
		t.Fatalf("unexpected digest %q", corrupt.Digest)
	}
	if !errors.Is(err, apirequest.ErrCacheCorrupt) {
		t.Fatalf("expected ErrCacheCorrupt")
	}
}

func TestFileStore_RejectsInvalidBody(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(dir, nil)
	d := apirequest.New(apirequest.EndpointTeamDetails, apirequest.ParamTeamID, "2")

	if err := store.Store(ctx, d, []byte("<html>rate limited</html>")); err == nil {
		t.Fatalf("expected invalid body to be rejected")
	}
	if store.Exists(ctx, d) {
		t.Fatalf("invalid body must not be cached")
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir(), nil)
	_, err := store.Load(context.Background(), apirequest.New(apirequest.EndpointTeamDetails, apirequest.ParamTeamID, "3"))
	if err == nil {
		t.Fatalf("expected error for missing entry")
	}
	if errors.Is(err, apirequest.ErrCacheCorrupt) {
		t.Fatalf("missing entry must not be reported as corrupt")
	}
}
