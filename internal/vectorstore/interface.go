package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks answerdesk/internal/vectorstore VectorStore

import "context"

// Point represents a vector point scoped to a tenant namespace.
type Point struct {
	ID        string
	Vec       []float32
	Namespace string
}

// Match represents a similarity search hit. Only the ID and score come back
// from the index; content is materialized from relational storage.
type Match struct {
	ID    string
	Score float32
}

// VectorStore defines the interface for the vector index gateway. The
// namespace is the tenant partition: every operation is scoped to one.
type VectorStore interface {
	// Upsert inserts or updates points under their namespaces.
	Upsert(ctx context.Context, points []Point) error

	// Query returns the top-k nearest neighbors within a namespace, ordered
	// by descending similarity.
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Match, error)

	// Delete removes points by ID within a namespace.
	Delete(ctx context.Context, namespace string, ids []string) error

	// DeleteNamespace removes every point in a namespace.
	DeleteNamespace(ctx context.Context, namespace string) error
}
