package localfs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	storage, err := New(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	content := "INVOICE #12345"
	info, err := storage.Save(context.Background(), "doc-1_invoice.txt", strings.NewReader(content))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	sum := sha256.Sum256([]byte(content))
	if info.SHA256 != hex.EncodeToString(sum[:]) {
		t.Errorf("SHA256 = %q, want content hash", info.SHA256)
	}
	if info.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", info.Size, len(content))
	}

	reader, err := storage.Open(context.Background(), "doc-1_invoice.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer reader.Close()

	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read stored object: %v", err)
	}
	if string(got) != content {
		t.Fatalf("stored content = %q, want %q", got, content)
	}
}

func TestSaveEnforcesSizeCap(t *testing.T) {
	dir := t.TempDir()
	storage, err := New(dir, 8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = storage.Save(context.Background(), "big.bin", strings.NewReader("123456789"))
	if !domain.IsKind(err, domain.ErrFileTooLarge) {
		t.Fatalf("Save() error = %v, want ErrFileTooLarge", err)
	}

	if _, statErr := os.Stat(filepath.Join(dir, "big.bin")); !os.IsNotExist(statErr) {
		t.Fatal("oversized upload left a partial file behind")
	}
}

func TestSaveAcceptsExactlyAtLimit(t *testing.T) {
	storage, err := New(t.TempDir(), 8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	info, err := storage.Save(context.Background(), "edge.bin", strings.NewReader("12345678"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if info.Size != 8 {
		t.Fatalf("Size = %d, want 8", info.Size)
	}
}

func TestOpenMissingObject(t *testing.T) {
	storage, err := New(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := storage.Open(context.Background(), "nope.txt"); err == nil {
		t.Fatal("Open() expected error for missing object")
	}
}
