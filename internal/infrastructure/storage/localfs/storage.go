package localfs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
	"github.com/itune8/autodoc-classifier/internal/core/ports"
)

// Storage keeps uploaded source documents on the local filesystem. Save
// hashes the content while writing and enforces the configured size cap.
type Storage struct {
	basePath string
	maxBytes int64
}

func New(basePath string, maxBytes int64) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/storage"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{basePath: basePath, maxBytes: maxBytes}, nil
}

func (s *Storage) Save(_ context.Context, key string, data io.Reader) (ports.ObjectInfo, error) {
	path := filepath.Join(s.basePath, key)
	f, err := os.Create(path)
	if err != nil {
		return ports.ObjectInfo{}, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	src := data
	if s.maxBytes > 0 {
		// One extra byte so an exactly-at-limit upload still passes.
		src = io.LimitReader(data, s.maxBytes+1)
	}

	hasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(f, hasher), src)
	if err != nil {
		_ = os.Remove(path)
		return ports.ObjectInfo{}, fmt.Errorf("write file: %w", err)
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		_ = os.Remove(path)
		return ports.ObjectInfo{}, domain.WrapError(domain.ErrFileTooLarge, "store upload",
			fmt.Errorf("limit %d bytes", s.maxBytes))
	}

	return ports.ObjectInfo{
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
		Size:   written,
	}, nil
}

func (s *Storage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	path := filepath.Join(s.basePath, key)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}
