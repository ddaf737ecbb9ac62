package responsecache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/nba-lunar/internal/domain/apirequest"
	basecache "github.com/riskibarqy/nba-lunar/internal/platform/cache"
	"github.com/riskibarqy/nba-lunar/internal/platform/logging"
)

const fileExt = ".json"

var errInvalidJSON = crerr.New("response body is not valid JSON")

// FileStore keeps one <digest>.json file per descriptor under dir. Entries are
// never deleted; a memo serves repeated reads from memory.
type FileStore struct {
	dir    string
	memo   *basecache.Store[[]byte]
	logger *logging.Logger
}

var _ apirequest.ResponseCache = (*FileStore)(nil)

func NewFileStore(dir string, logger *logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &FileStore{
		dir:    dir,
		memo:   basecache.NewStore[[]byte](0),
		logger: logger.Named("responsecache"),
	}
}

// Path is where d's body is, or would be, stored.
func (s *FileStore) Path(d apirequest.Descriptor) string {
	return filepath.Join(s.dir, d.Digest()+fileExt)
}

func (s *FileStore) Exists(ctx context.Context, d apirequest.Descriptor) bool {
	if _, ok := s.memo.Get(ctx, d.Digest()); ok {
		return true
	}
	info, err := os.Stat(s.Path(d))
	return err == nil && info.Mode().IsRegular()
}

// Load returns the stored body. Bytes that are not valid JSON yield a
// *apirequest.CacheCorruptError and are not memoized.
func (s *FileStore) Load(ctx context.Context, d apirequest.Descriptor) ([]byte, error) {
	digest := d.Digest()
	return s.memo.GetOrLoad(ctx, digest, func(context.Context) ([]byte, error) {
		raw, err := os.ReadFile(s.Path(d))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, crerr.Wrapf(err, "cache entry %s not found", digest)
			}
			return nil, crerr.Wrapf(err, "read cache entry %s", digest)
		}
		if err := validateJSON(raw); err != nil {
			return nil, apirequest.NewCacheCorruptError(digest, err)
		}
		return raw, nil
	})
}

// Store writes body for d, replacing any previous entry. The write goes
// through a temp file so a crash never leaves a truncated entry.
func (s *FileStore) Store(ctx context.Context, d apirequest.Descriptor, body []byte) error {
	digest := d.Digest()
	if err := validateJSON(body); err != nil {
		return crerr.Wrapf(err, "store cache entry %s", digest)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create cache dir %s", s.dir)
	}

	tmp, err := os.CreateTemp(s.dir, digest+".*.tmp")
	if err != nil {
		return crerr.Wrapf(err, "create temp cache entry %s", digest)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "write cache entry %s", digest)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close cache entry %s", digest)
	}
	if err := os.Rename(tmpName, s.Path(d)); err != nil {
		return crerr.Wrapf(err, "commit cache entry %s", digest)
	}

	stored := append([]byte(nil), body...)
	s.memo.Set(ctx, digest, stored)
	s.logger.DebugContext(ctx, "cache entry stored", "endpoint", d.Endpoint, "digest", digest, "bytes", len(body))
	return nil
}

func validateJSON(raw []byte) error {
	if sonic.Valid(raw) {
		return nil
	}
	var probe any
	if err := sonic.Unmarshal(raw, &probe); err != nil {
		return err
	}
	return errInvalidJSON
}
