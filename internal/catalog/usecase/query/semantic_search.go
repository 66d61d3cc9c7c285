package query

import (
	"context"
	"fmt"

	"github.com/artisy/storefront/internal/catalog/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

// Products below this cosine similarity are not considered a match.
const similarityThreshold = 0.7

// Embedder turns free text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SemanticSearchQuery represents the query for similarity search
type SemanticSearchQuery struct {
	Query string
	Limit int
}

// SemanticSearchHandler handles semantic search queries
type SemanticSearchHandler struct {
	repo     domain.ProductRepository
	embedder Embedder
}

// NewSemanticSearchHandler creates a new semantic search handler
func NewSemanticSearchHandler(repo domain.ProductRepository, embedder Embedder) *SemanticSearchHandler {
	return &SemanticSearchHandler{repo: repo, embedder: embedder}
}

// Handle executes the semantic search query
func (h *SemanticSearchHandler) Handle(ctx context.Context, q SemanticSearchQuery) ([]domain.Product, error) {
	if q.Query == "" {
		return nil, apperr.New(apperr.InvalidArgument, "query is required")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}

	embedding, err := h.embedder.Embed(ctx, q.Query)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to embed query", err)
	}

	products, err := h.repo.FindNearest(embedding, similarityThreshold, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to run semantic search: %w", err)
	}
	return products, nil
}
