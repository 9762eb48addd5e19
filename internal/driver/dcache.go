package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"restyle/internal/rules"
)

// Bump when DiskPayload changes shape; stale entries then read as misses.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content or settings hash.
type Digest = [sha256.Size]byte

// DiskCache remembers which file contents analyzed clean under which
// settings, so unchanged trees re-check almost for free.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the stored record for one clean (content, settings) pair.
type DiskPayload struct {
	Schema    uint16
	Path      string
	CheckedAt int64
}

// OpenDiskCache initializes a disk cache at the XDG-standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Subdirectory keeps the cache root readable and easy to clear.
	return filepath.Join(c.dir, "clean", hexKey+".mp")
}

// Put serializes and atomically writes a payload.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload. Missing keys are not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// MarkClean records that a file with contentHash analyzed clean under s.
func (c *DiskCache) MarkClean(contentHash Digest, s rules.Settings, path string) error {
	return c.Put(cleanKey(contentHash, s), &DiskPayload{
		Schema:    diskCacheSchemaVersion,
		Path:      path,
		CheckedAt: time.Now().Unix(),
	})
}

// IsClean reports whether (contentHash, s) is recorded as clean. Any read or
// schema problem reads as a miss.
func (c *DiskCache) IsClean(contentHash Digest, s rules.Settings) bool {
	var payload DiskPayload
	ok, err := c.Get(cleanKey(contentHash, s), &payload)
	if err != nil || !ok {
		return false
	}
	return payload.Schema == diskCacheSchemaVersion
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cleanKey is H(contentHash || settingsDigest).
func cleanKey(contentHash Digest, s rules.Settings) Digest {
	h := sha256.New()
	_, _ = h.Write(contentHash[:])
	d := settingsDigest(s)
	_, _ = h.Write(d[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// settingsDigest hashes a deterministic rendering of the settings. Map and
// slice order must not leak into the key.
func settingsDigest(s rules.Settings) Digest {
	h := sha256.New()

	disabled := append([]string(nil), s.Disabled...)
	sort.Strings(disabled)
	for _, name := range disabled {
		_, _ = io.WriteString(h, "d:"+name+"\n")
	}

	props := make([]string, 0, len(s.DefaultProps))
	for k := range s.DefaultProps {
		props = append(props, k)
	}
	sort.Strings(props)
	for _, k := range props {
		_, _ = io.WriteString(h, "p:"+k+"="+s.DefaultProps[k]+"\n")
	}

	_, _ = io.WriteString(h, "h:"+s.ClassHelper+"\n")
	_, _ = io.WriteString(h, "m:"+s.ClassHelperSource+"\n")
	_, _ = io.WriteString(h, "i:"+s.SpacingIndent+"\n")

	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
