// Package fs writes scraped profiles to a directory tree of JSON files.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/profilescan"
)

var _ profilescan.ProfileStore = (*ProfileStore)(nil)

// URLToPath converts a profile URL to a relative file path under its host.
// Example: https://www.fiverr.com/jane/logo?ref=x → www.fiverr.com/jane/logo.json
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", profilescan.WrapError(profilescan.EINVALIDURL, err, "invalid URL %q", rawURL)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", profilescan.Errorf(profilescan.EINVALIDURL, "URL %q has no host", rawURL)
	}

	// Cleaning a rooted path drops any ".." segments.
	p := path.Clean("/" + u.Path)
	if p == "/" || strings.HasSuffix(u.Path, "/") {
		p = path.Join(p, "index")
	}

	return filepath.Join(host, filepath.FromSlash(strings.TrimPrefix(p, "/"))+".json"), nil
}

// ProfileStore saves profiles to dir.tmp and moves them to dir on Commit,
// replacing what dir held before.
type ProfileStore struct {
	dir string

	// started is set once the temp directory left by an earlier run has
	// been cleared.
	started bool
}

// NewProfileStore creates a ProfileStore that publishes to dir.
func NewProfileStore(dir string) *ProfileStore {
	return &ProfileStore{dir: filepath.Clean(dir)}
}

func (s *ProfileStore) tempDir() string {
	return s.dir + ".tmp"
}

// Save writes profile as indented JSON.
func (s *ProfileStore) Save(ctx context.Context, url string, profile *profilescan.ScrapedProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rel, err := URLToPath(url)
	if err != nil {
		return err
	}

	if !s.started {
		if err := os.RemoveAll(s.tempDir()); err != nil {
			return err
		}
		s.started = true
	}
	full := filepath.Join(s.tempDir(), rel)

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return profilescan.WrapError(profilescan.EINTERNAL, err, "failed to encode profile")
	}
	return os.WriteFile(full, append(b, '\n'), 0644)
}

// Commit moves the saved profiles into place. Committing without any
// saved profile leaves dir untouched.
func (s *ProfileStore) Commit() error {
	if !s.started {
		return nil
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.dir)
}

// Abort discards saved profiles.
func (s *ProfileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
