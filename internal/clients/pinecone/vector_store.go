package pinecone

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/luminalearn/lumina-backend/internal/logger"
)

// VectorStore is the lesson-embedding index. IDs are lesson ids rendered as
// strings; Pinecone requires string vector ids.
type VectorStore interface {
	Upsert(ctx context.Context, vectors []Vector) error
	// Fetch returns the stored vector for id, or nil when it was never indexed.
	Fetch(ctx context.Context, id string) ([]float32, error)
	// QueryIDs returns the ids most similar to q, best first.
	QueryIDs(ctx context.Context, q []float32, topK int) ([]string, error)
	DeleteIDs(ctx context.Context, ids []string) error
}

type vectorStore struct {
	log       *logger.Logger
	pc        Client
	indexName string
	indexHost string
	namespace string
}

func NewVectorStore(log *logger.Logger, pc Client) (VectorStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if pc == nil {
		return nil, fmt.Errorf("pinecone client required")
	}

	indexName := strings.TrimSpace(os.Getenv("PINECONE_INDEX_NAME"))
	if indexName == "" {
		return nil, fmt.Errorf("missing PINECONE_INDEX_NAME")
	}

	host := strings.TrimSpace(os.Getenv("PINECONE_INDEX_HOST"))
	namespace := strings.TrimSpace(os.Getenv("PINECONE_NAMESPACE"))
	if namespace == "" {
		namespace = "lessons"
	}

	// If host missing, bootstrap via describe_index (fine for local/dev; avoid in prod).
	if host == "" {
		desc, err := pc.DescribeIndex(context.Background(), indexName)
		if err != nil {
			return nil, fmt.Errorf("pinecone describe_index failed: %w", err)
		}
		host = strings.TrimSpace(desc.Host)
		if host == "" {
			return nil, fmt.Errorf("pinecone describe_index returned empty host")
		}
		log.Warn("PINECONE_INDEX_HOST not set; resolved via describe_index (avoid this in production)",
			"index_name", indexName,
			"index_host", host,
		)
	}

	return &vectorStore{
		log:       log.With("client", "PineconeVectorStore"),
		pc:        pc,
		indexName: indexName,
		indexHost: host,
		namespace: namespace,
	}, nil
}

func (s *vectorStore) Upsert(ctx context.Context, vectors []Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	_, err := s.pc.UpsertVectors(ctx, s.indexHost, UpsertRequest{
		Namespace: s.namespace,
		Vectors:   vectors,
	})
	return err
}

func (s *vectorStore) Fetch(ctx context.Context, id string) ([]float32, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("vector id required")
	}
	resp, err := s.pc.FetchVectors(ctx, s.indexHost, FetchRequest{
		IDs:       []string{id},
		Namespace: s.namespace,
	})
	if err != nil {
		return nil, err
	}
	vec, ok := resp.Vectors[id]
	if !ok || len(vec.Values) == 0 {
		return nil, nil
	}
	return vec.Values, nil
}

func (s *vectorStore) QueryIDs(ctx context.Context, q []float32, topK int) ([]string, error) {
	resp, err := s.pc.Query(ctx, s.indexHost, QueryRequest{
		Namespace:       s.namespace,
		Vector:          q,
		TopK:            topK,
		IncludeValues:   false,
		IncludeMetadata: false,
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		if strings.TrimSpace(m.ID) != "" {
			out = append(out, m.ID)
		}
	}
	return out, nil
}

func (s *vectorStore) DeleteIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.pc.DeleteVectors(ctx, s.indexHost, DeleteRequest{
		IDs:       ids,
		Namespace: s.namespace,
	})
}
