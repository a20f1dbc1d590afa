package favorites

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IdentityProvider yields the anonymous owner id for this device. An empty
// id means no durable storage is available, which makes the store inert.
type IdentityProvider interface {
	OwnerID() string
}

// NewOwnerID generates a fresh anonymous owner id: a millisecond timestamp
// plus a short random suffix. Created once per device, never rotated.
func NewOwnerID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("anon_%d_%s", time.Now().UnixMilli(), suffix)
}

// FileIdentity persists the owner id in a file, the durable-storage analog
// of a browser's localStorage entry. The first access creates the id; when
// the file cannot be written the identity reports empty and the store stays
// inert.
type FileIdentity struct {
	Path string

	mu     sync.Mutex
	cached string
	tried  bool
}

func NewFileIdentity(path string) *FileIdentity {
	return &FileIdentity{Path: path}
}

func (f *FileIdentity) OwnerID() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tried {
		return f.cached
	}
	f.tried = true

	if data, err := os.ReadFile(f.Path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			f.cached = id
			return f.cached
		}
	}

	id := NewOwnerID()
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return ""
	}
	if err := os.WriteFile(f.Path, []byte(id+"\n"), 0o600); err != nil {
		return ""
	}
	f.cached = id
	return f.cached
}

// StaticIdentity is a fixed owner id for tests and single-user tools.
type StaticIdentity string

func (s StaticIdentity) OwnerID() string { return string(s) }
