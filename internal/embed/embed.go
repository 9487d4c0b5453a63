// Package embed talks to the sentence-embedding collaborator.
//
// The model runs as a pre-fetched local sidecar exposing an
// OpenAI-compatible /v1/embeddings endpoint, so runs need no outbound
// network access. Callers depend on the narrow Embedder interface and
// can swap in a fixture implementation in tests.
package embed

import "context"

// Embedder maps texts to fixed-length vectors. Implementations must be
// deterministic for identical input and model version.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
