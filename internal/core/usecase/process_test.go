package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

type statusCall struct {
	status domain.DocumentStatus
	errMsg string
}

type processRepoFake struct {
	doc           *domain.Document
	getErr        error
	saveErr       error
	statusErr     error
	failStatusErr error

	statusCalls      []statusCall
	classification   domain.Classification
	classificationID string
	rawText          string
}

func (f *processRepoFake) Create(context.Context, *domain.Document) error { return nil }

func (f *processRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyDoc := *f.doc
	return &copyDoc, nil
}

func (f *processRepoFake) List(context.Context, int) ([]domain.Document, error) { return nil, nil }

func (f *processRepoFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	if status == domain.StatusFailed && f.failStatusErr != nil {
		return f.failStatusErr
	}
	if f.statusErr != nil {
		return f.statusErr
	}
	return nil
}

func (f *processRepoFake) SaveClassification(_ context.Context, id string, cls domain.Classification, rawText string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.classificationID = id
	f.classification = cls
	f.rawText = rawText
	return nil
}

type fieldRepoFake struct {
	saveErr error

	savedID     string
	savedType   domain.DocumentType
	savedFields domain.FieldMap
	saveCalls   int
}

func (f *fieldRepoFake) SaveFields(_ context.Context, documentID string, docType domain.DocumentType, fields domain.FieldMap) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveCalls++
	f.savedID = documentID
	f.savedType = docType
	f.savedFields = fields
	return nil
}

func (f *fieldRepoFake) GetFields(context.Context, string, domain.DocumentType) (domain.FieldMap, error) {
	return domain.FieldMap{}, nil
}

type extractorFake struct {
	text string
	err  error
}

func (f *extractorFake) Extract(context.Context, *domain.Document) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type cacheFake struct {
	stored map[string]domain.ExtractionResult
	getErr error
	putErr error

	gets int
	puts int
}

func newCacheFake() *cacheFake {
	return &cacheFake{stored: map[string]domain.ExtractionResult{}}
}

func (f *cacheFake) Get(_ context.Context, contentHash string) (*domain.ExtractionResult, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if result, ok := f.stored[contentHash]; ok {
		return &result, nil
	}
	return nil, nil
}

func (f *cacheFake) Put(_ context.Context, contentHash string, result domain.ExtractionResult) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.stored[contentHash] = result
	return nil
}

const invoiceText = "Invoice Number: INV-001\nTotal Amount: $99.00"

func TestProcessByIDSuccess(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1", ContentHash: "hash-1"}}
	fieldRepo := &fieldRepoFake{}
	cache := newCacheFake()
	uc := NewProcessDocumentUseCase(repo, fieldRepo, &extractorFake{text: invoiceText}, cache, 0.0)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}

	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected 2 status calls, got %d: %+v", len(repo.statusCalls), repo.statusCalls)
	}
	if repo.statusCalls[0].status != domain.StatusProcessing || repo.statusCalls[1].status != domain.StatusReady {
		t.Fatalf("unexpected status sequence: %+v", repo.statusCalls)
	}
	if repo.classificationID != "doc-1" {
		t.Fatalf("expected classification save for doc-1, got %q", repo.classificationID)
	}
	if repo.classification.Type != domain.TypeInvoice {
		t.Fatalf("classification type = %q, want invoice", repo.classification.Type)
	}
	if repo.rawText != invoiceText {
		t.Fatalf("raw text not persisted alongside classification")
	}
	if fieldRepo.savedType != domain.TypeInvoice || fieldRepo.savedFields["invoice_number"] != "INV-001" {
		t.Fatalf("unexpected saved fields: type=%q fields=%v", fieldRepo.savedType, fieldRepo.savedFields)
	}
	if cache.puts != 1 {
		t.Fatalf("expected one cache write, got %d", cache.puts)
	}
}

func TestProcessByIDUnknownSkipsFieldSave(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	fieldRepo := &fieldRepoFake{}
	uc := NewProcessDocumentUseCase(repo, fieldRepo, &extractorFake{text: "nothing recognizable"}, nil, 0.7)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}

	if repo.classification.Type != domain.TypeUnknown {
		t.Fatalf("classification type = %q, want unknown", repo.classification.Type)
	}
	if fieldRepo.saveCalls != 0 {
		t.Fatalf("SaveFields called %d times for unknown document, want 0", fieldRepo.saveCalls)
	}
	if repo.statusCalls[len(repo.statusCalls)-1].status != domain.StatusReady {
		t.Fatalf("unknown document should still end ready: %+v", repo.statusCalls)
	}
}

func TestProcessByIDUsesCachedResult(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1", ContentHash: "hash-1"}}
	fieldRepo := &fieldRepoFake{}
	cache := newCacheFake()
	cache.stored["hash-1"] = domain.ExtractionResult{
		Type:       domain.TypePassport,
		Confidence: 1.0,
		Fields:     domain.FieldMap{"passport_number": "X99"},
	}
	uc := NewProcessDocumentUseCase(repo, fieldRepo, &extractorFake{text: invoiceText}, cache, 0.0)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}

	if repo.classification.Type != domain.TypePassport {
		t.Fatalf("cached result ignored: got %q", repo.classification.Type)
	}
	if fieldRepo.savedFields["passport_number"] != "X99" {
		t.Fatalf("cached fields not persisted: %v", fieldRepo.savedFields)
	}
	if cache.puts != 0 {
		t.Fatalf("cache hit must not rewrite the entry, got %d puts", cache.puts)
	}
}

func TestProcessByIDCacheErrorsAreMisses(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1", ContentHash: "hash-1"}}
	cache := newCacheFake()
	cache.getErr = errors.New("bolt: page corrupted")
	cache.putErr = errors.New("bolt: page corrupted")
	uc := NewProcessDocumentUseCase(repo, &fieldRepoFake{}, &extractorFake{text: invoiceText}, cache, 0.0)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v, cache failures must not fail the document", err)
	}
	if repo.classification.Type != domain.TypeInvoice {
		t.Fatalf("classification type = %q, want invoice", repo.classification.Type)
	}
}

func TestProcessByIDReportsCacheOutcomes(t *testing.T) {
	cache := newCacheFake()
	cache.stored["hash-2"] = domain.ExtractionResult{Type: domain.TypeInvoice, Confidence: 1.0}

	cases := []struct {
		name string
		doc  *domain.Document
		want []bool
	}{
		{"miss", &domain.Document{ID: "doc-1", ContentHash: "hash-1"}, []bool{false}},
		{"hit", &domain.Document{ID: "doc-2", ContentHash: "hash-2"}, []bool{true}},
		{"no hash skips lookup", &domain.Document{ID: "doc-3"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &processRepoFake{doc: tc.doc}
			var outcomes []bool
			uc := NewProcessDocumentUseCase(repo, &fieldRepoFake{}, &extractorFake{text: invoiceText}, cache, 0.0).
				WithCacheObserver(func(hit bool) { outcomes = append(outcomes, hit) })

			if err := uc.ProcessByID(context.Background(), tc.doc.ID); err != nil {
				t.Fatalf("ProcessByID() error = %v", err)
			}
			if len(outcomes) != len(tc.want) {
				t.Fatalf("observer calls = %v, want %v", outcomes, tc.want)
			}
			for i := range tc.want {
				if outcomes[i] != tc.want[i] {
					t.Fatalf("observer calls = %v, want %v", outcomes, tc.want)
				}
			}
		})
	}
}

func TestProcessByIDCacheErrorReportsMiss(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1", ContentHash: "hash-1"}}
	cache := newCacheFake()
	cache.getErr = errors.New("bolt: page corrupted")

	var outcomes []bool
	uc := NewProcessDocumentUseCase(repo, &fieldRepoFake{}, &extractorFake{text: invoiceText}, cache, 0.0).
		WithCacheObserver(func(hit bool) { outcomes = append(outcomes, hit) })

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if len(outcomes) != 1 || outcomes[0] {
		t.Fatalf("observer calls = %v, want one miss", outcomes)
	}
}

func TestProcessByIDMarksFailedOnExtractError(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(repo, &fieldRepoFake{}, &extractorFake{err: errors.New("broken pdf")}, nil, 0.7)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err == nil {
		t.Fatal("ProcessByID() expected error")
	}

	last := repo.statusCalls[len(repo.statusCalls)-1]
	if last.status != domain.StatusFailed {
		t.Fatalf("final status = %q, want failed", last.status)
	}
	if last.errMsg == "" {
		t.Fatal("failed status must carry the error message")
	}
}

func TestProcessByIDEmptyTextIsNotAnError(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	fieldRepo := &fieldRepoFake{}
	uc := NewProcessDocumentUseCase(repo, fieldRepo, &extractorFake{text: ""}, nil, 0.7)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v, empty text should classify as unknown", err)
	}
	if repo.classification.Type != domain.TypeUnknown {
		t.Fatalf("classification type = %q, want unknown", repo.classification.Type)
	}
}

func TestProcessByIDMarksFailedOnPersistError(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}, saveErr: errors.New("db down")}
	uc := NewProcessDocumentUseCase(repo, &fieldRepoFake{}, &extractorFake{text: invoiceText}, nil, 0.7)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err == nil {
		t.Fatal("ProcessByID() expected error")
	}
	last := repo.statusCalls[len(repo.statusCalls)-1]
	if last.status != domain.StatusFailed {
		t.Fatalf("final status = %q, want failed", last.status)
	}
}
