package localmedia

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
)

// Store writes media objects under a local directory and serves them back
// through the router's static mount. Keys are slash-separated relative paths.
type Store interface {
	Save(key string, r io.Reader) error
	Delete(key string) error
	PublicURL(key string) string
}

type store struct {
	log     *logger.Logger
	root    string
	baseURL string
}

func NewStore(log *logger.Logger, root, baseURL string) (Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "./media"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &store{
		log:     log.With("service", "LocalMedia"),
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *store) path(key string) (string, error) {
	key = strings.TrimLeft(filepath.ToSlash(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

func (s *store) Save(key string, r io.Reader) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir media dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write media file: %w", err)
	}
	return nil
}

func (s *store) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

func (s *store) PublicURL(key string) string {
	return s.baseURL + "/media/" + strings.TrimLeft(filepath.ToSlash(key), "/")
}
