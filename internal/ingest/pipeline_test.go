package ingest_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"answerdesk/internal/chunker"
	"answerdesk/internal/ingest"
	"answerdesk/internal/storage"
	storage_mocks "answerdesk/internal/storage/mocks"
	"answerdesk/internal/vectorstore"
	vectorstore_mocks "answerdesk/internal/vectorstore/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeEmbedder returns one fixed-size vector per input text.
type fakeEmbedder struct {
	dims  int
	err   error
	calls int
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, f.dims)
	}
	return out, nil
}

type pipelineFixture struct {
	jobs     *storage_mocks.MockJobStore
	chunks   *storage_mocks.MockChunkStore
	vectors  *vectorstore_mocks.MockVectorStore
	embedder *fakeEmbedder
	pipeline *ingest.Pipeline
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &pipelineFixture{
		jobs:     storage_mocks.NewMockJobStore(ctrl),
		chunks:   storage_mocks.NewMockChunkStore(ctrl),
		vectors:  vectorstore_mocks.NewMockVectorStore(ctrl),
		embedder: &fakeEmbedder{dims: 8},
	}
	f.pipeline = ingest.NewPipeline(f.jobs, f.chunks, f.vectors, f.embedder, chunker.New(chunker.ApproxCounter{}))
	return f
}

// longText returns plausible multi-paragraph content above the minimum
// ingestion length.
func longText() string {
	para := strings.Repeat("Our support team answers questions about orders. ", 10)
	return para + "\n\n" + para
}

func testIngestRequest(sourceType, content string) ingest.Request {
	return ingest.Request{
		TenantID:    "tenant-1",
		SiteID:      "site-abc",
		SourceType:  sourceType,
		Content:     content,
		SourceURL:   "https://acme.com/help",
		SourceTitle: "Help Center",
	}
}

func TestIngest_Success(t *testing.T) {
	f := newPipelineFixture(t)
	ctx := context.Background()

	var insertedJob *storage.IngestionJobRecord
	f.jobs.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *storage.IngestionJobRecord) error {
			insertedJob = job
			return nil
		})

	var upserted []vectorstore.Point
	f.vectors.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, points []vectorstore.Point) error {
			upserted = points
			return nil
		})

	var stored []*storage.ChunkRecord
	f.chunks.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, chunks []*storage.ChunkRecord) error {
			stored = chunks
			return nil
		})

	f.jobs.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), storage.JobStatusCompleted, gomock.Any(), "").Return(nil)

	job, err := f.pipeline.Ingest(ctx, testIngestRequest(ingest.SourceTypeText, longText()))
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if job.Status != storage.JobStatusCompleted {
		t.Errorf("job status = %q, want completed", job.Status)
	}
	if job.ChunksCreated == 0 {
		t.Error("job reports zero chunks")
	}
	if insertedJob == nil || insertedJob.Status != storage.JobStatusProcessing {
		t.Errorf("initial job = %+v, want processing status", insertedJob)
	}

	if len(upserted) != len(stored) {
		t.Fatalf("points (%d) and chunk rows (%d) out of sync", len(upserted), len(stored))
	}
	for i := range stored {
		if stored[i].VectorID != upserted[i].ID {
			t.Errorf("chunk %d vector ID %q does not match point ID %q", i, stored[i].VectorID, upserted[i].ID)
		}
		if upserted[i].Namespace != "site-abc" {
			t.Errorf("point %d namespace = %q, want site-abc", i, upserted[i].Namespace)
		}
		if stored[i].TenantID != "tenant-1" {
			t.Errorf("chunk %d tenant = %q", i, stored[i].TenantID)
		}
		if stored[i].SourceURL != "https://acme.com/help" || stored[i].SourceTitle != "Help Center" {
			t.Errorf("chunk %d source fields = %q %q", i, stored[i].SourceURL, stored[i].SourceTitle)
		}
	}
}

func TestIngest_MarkdownIsFlattened(t *testing.T) {
	f := newPipelineFixture(t)

	content := "# Help Center\n\n" + longText() + "\n\nContact **support** any time."

	f.jobs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.vectors.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	var stored []*storage.ChunkRecord
	f.chunks.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, chunks []*storage.ChunkRecord) error {
			stored = chunks
			return nil
		})
	f.jobs.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), storage.JobStatusCompleted, gomock.Any(), "").Return(nil)

	if _, err := f.pipeline.Ingest(context.Background(), testIngestRequest(ingest.SourceTypeMarkdown, content)); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	for _, c := range stored {
		if strings.Contains(c.Content, "#") || strings.Contains(c.Content, "**") {
			t.Errorf("chunk retained markdown syntax: %q", c.Content)
		}
	}
}

func TestIngest_UnsupportedSourceType(t *testing.T) {
	f := newPipelineFixture(t)

	if _, err := f.pipeline.Ingest(context.Background(), testIngestRequest("pdf", longText())); err == nil {
		t.Error("Ingest() error = nil, want error for unsupported source type")
	}
}

func TestIngest_InsufficientContentFailsJob(t *testing.T) {
	f := newPipelineFixture(t)

	f.jobs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.jobs.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), storage.JobStatusFailed, 0, gomock.Any()).Return(nil)

	job, err := f.pipeline.Ingest(context.Background(), testIngestRequest(ingest.SourceTypeText, "too short"))
	if err == nil {
		t.Fatal("Ingest() error = nil, want error for short content")
	}
	if job == nil || job.Status != storage.JobStatusFailed {
		t.Errorf("job = %+v, want failed status", job)
	}
}

func TestIngest_EmbeddingFailureFailsJob(t *testing.T) {
	f := newPipelineFixture(t)
	f.embedder.err = errors.New("embeddings down")

	f.jobs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.jobs.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), storage.JobStatusFailed, 0, gomock.Any()).Return(nil)

	job, err := f.pipeline.Ingest(context.Background(), testIngestRequest(ingest.SourceTypeText, longText()))
	if err == nil {
		t.Fatal("Ingest() error = nil, want embedding error")
	}
	if job.Status != storage.JobStatusFailed {
		t.Errorf("job status = %q, want failed", job.Status)
	}
	if job.ErrorMessage == "" {
		t.Error("job error message is empty")
	}
}

func TestDeleteJob(t *testing.T) {
	f := newPipelineFixture(t)
	ctx := context.Background()

	f.chunks.EXPECT().DeleteByJob(gomock.Any(), "tenant-1", "job-1").Return([]string{"v1", "v2"}, nil)
	f.vectors.EXPECT().Delete(gomock.Any(), "site-abc", []string{"v1", "v2"}).Return(nil)

	if err := f.pipeline.DeleteJob(ctx, "tenant-1", "site-abc", "job-1"); err != nil {
		t.Fatalf("DeleteJob() error = %v", err)
	}
}

func TestDeleteJob_NoChunks(t *testing.T) {
	f := newPipelineFixture(t)

	f.chunks.EXPECT().DeleteByJob(gomock.Any(), "tenant-1", "job-1").Return(nil, nil)
	// No vector delete when the job had no chunks.

	if err := f.pipeline.DeleteJob(context.Background(), "tenant-1", "site-abc", "job-1"); err != nil {
		t.Fatalf("DeleteJob() error = %v", err)
	}
}

func TestPurgeTenant(t *testing.T) {
	f := newPipelineFixture(t)

	f.chunks.EXPECT().DeleteByTenant(gomock.Any(), "tenant-1").Return(nil)
	f.vectors.EXPECT().DeleteNamespace(gomock.Any(), "site-abc").Return(nil)

	if err := f.pipeline.PurgeTenant(context.Background(), "tenant-1", "site-abc"); err != nil {
		t.Fatalf("PurgeTenant() error = %v", err)
	}
}
