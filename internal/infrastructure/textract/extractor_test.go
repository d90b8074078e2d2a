package textract

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
	"github.com/itune8/autodoc-classifier/internal/core/ports"
)

type memoryStorage struct {
	objects map[string][]byte
}

func (m *memoryStorage) Save(_ context.Context, key string, data io.Reader) (ports.ObjectInfo, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return ports.ObjectInfo{}, err
	}
	m.objects[key] = raw
	return ports.ObjectInfo{Size: int64(len(raw))}, nil
}

func (m *memoryStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.objects[key])), nil
}

func TestExtractBytesPlainText(t *testing.T) {
	svc := NewService(nil, nil)

	got, err := svc.ExtractBytes(context.Background(), []byte("  Invoice Number: INV-1  \n"), ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes() error = %v", err)
	}
	if got != "Invoice Number: INV-1" {
		t.Fatalf("ExtractBytes() = %q, want trimmed text", got)
	}
}

func TestExtractBytesRejectsBinaryTxt(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.ExtractBytes(context.Background(), []byte{0xff, 0xfe, 0x00, 0x80}, ".txt")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("ExtractBytes() error = %v, want ErrInvalidInput", err)
	}
}

func TestExtractBytesUnsupportedExtension(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.ExtractBytes(context.Background(), []byte("x"), ".docx")
	if !domain.IsKind(err, domain.ErrUnsupportedFile) {
		t.Fatalf("ExtractBytes() error = %v, want ErrUnsupportedFile", err)
	}
}

func TestExtractBytesExtensionIsCaseInsensitive(t *testing.T) {
	svc := NewService(nil, nil)

	got, err := svc.ExtractBytes(context.Background(), []byte("hello"), ".TXT")
	if err != nil {
		t.Fatalf("ExtractBytes() error = %v", err)
	}
	if got != "hello" {
		t.Fatalf("ExtractBytes() = %q, want %q", got, "hello")
	}
}

func TestExtractImageWithOCRDisabled(t *testing.T) {
	svc := NewService(nil, NewOCR("tesseract", 0, false, nil))

	got, err := svc.ExtractBytes(context.Background(), []byte{0x89, 'P', 'N', 'G'}, ".png")
	if err != nil {
		t.Fatalf("ExtractBytes() error = %v", err)
	}
	if got != "" {
		t.Fatalf("ExtractBytes() = %q, want empty with OCR disabled", got)
	}
}

func TestExtractReadsFromStorage(t *testing.T) {
	storage := &memoryStorage{objects: map[string][]byte{
		"doc-1_note.txt": []byte("Pay Stub\nGross Pay: $1"),
	}}
	svc := NewService(storage, nil)

	doc := &domain.Document{ID: "doc-1", Filename: "note.txt", StoragePath: "doc-1_note.txt"}
	got, err := svc.Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "Pay Stub\nGross Pay: $1" {
		t.Fatalf("Extract() = %q", got)
	}
}
