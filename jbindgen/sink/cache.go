package sink

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// digestDomain separates artifact digests from any other hash jbind computes.
const digestDomain = "jbind/artifact/v1"

// Digest returns the content address of a generated artifact.
// Format: hex(SHA256(domain + 0x00 + content)).
func Digest(content []byte) string {
	h := sha256.New()
	h.Write([]byte(digestDomain))
	h.Write([]byte{0x00})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// WriteStatus reports what a WriteCache did with an update.
type WriteStatus int

const (
	// StatusWritten means the content differed (or was new) and was written.
	StatusWritten WriteStatus = iota
	// StatusUnchanged means identical content was already present; nothing was written.
	StatusUnchanged
)

func (s WriteStatus) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusUnchanged:
		return "unchanged"
	default:
		return fmt.Sprintf("WriteStatus(%d)", int(s))
	}
}

// WriteCache writes through to a sink only when content changes, so that
// regenerating from an unchanged definition leaves file timestamps alone.
//
// When the sink implements FileReader the current content is compared
// against the new content on every update. Otherwise the cache remembers
// the digest of everything it wrote during its lifetime.
type WriteCache struct {
	sink   OutputSink
	reader FileReader

	mu      sync.Mutex
	written map[string]string // path -> digest
}

// NewWriteCache returns a WriteCache writing to s.
func NewWriteCache(s OutputSink) *WriteCache {
	c := &WriteCache{
		sink:    s,
		written: make(map[string]string),
	}
	if r, ok := s.(FileReader); ok {
		c.reader = r
	}
	return c
}

// Update writes content to path unless the sink already holds the same bytes.
func (c *WriteCache) Update(ctx context.Context, path string, content []byte) (WriteStatus, error) {
	sum := Digest(content)

	current, known, err := c.currentDigest(ctx, path)
	if err != nil {
		return StatusWritten, err
	}
	if known && current == sum {
		return StatusUnchanged, nil
	}

	if err := c.sink.WriteFile(ctx, path, content); err != nil {
		return StatusWritten, err
	}

	c.mu.Lock()
	c.written[path] = sum
	c.mu.Unlock()
	return StatusWritten, nil
}

func (c *WriteCache) currentDigest(ctx context.Context, path string) (string, bool, error) {
	if c.reader != nil {
		existing, err := c.reader.ReadFile(ctx, path)
		switch {
		case err == nil:
			return Digest(existing), true, nil
		case errors.Is(err, fs.ErrNotExist):
			return "", false, nil
		default:
			return "", false, fmt.Errorf("read %s: %w", path, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	sum, ok := c.written[path]
	return sum, ok, nil
}
