package vectorindex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// payloadChunkIDField stores the original int64 chunk ID, since Qdrant
// point IDs must be UUIDs or unsigned integers.
const payloadChunkIDField = "chunk_id"
const payloadDocumentIDField = "document_id"

// qdrantIndex is the pluggable remote ANN backend for corpora large
// enough that the embedded sqlite-vec table stops being the right tool
// (Stats always reports it as the "enterprise" tier).
type qdrantIndex struct {
	client     *qdrant.Client
	collection string
	dim        int
}

func newQdrantIndex(addr, collection string, dim int) (*qdrantIndex, error) {
	if collection == "" {
		return nil, fmt.Errorf("ragcore: qdrant collection name is required")
	}
	parsed, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("ragcore: parse qdrant address: %w", err)
	}
	host := parsed.Hostname()
	if host == "" {
		host = "localhost"
	}
	port := parsed.Port()
	if port == "" {
		port = "6334"
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("ragcore: invalid qdrant port: %w", err)
	}
	cfg := &qdrant.Config{Host: host, Port: portNum}
	if parsed.Scheme == "https" {
		cfg.UseTLS = true
	}
	if apiKey := parsed.Query().Get("api_key"); apiKey != "" {
		cfg.APIKey = apiKey
	}
	client, err := qdrant.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("ragcore: create qdrant client: %w", err)
	}
	return &qdrantIndex{client: client, collection: collection, dim: dim}, nil
}

func (q *qdrantIndex) EnsureCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collection)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	if exists {
		return nil
	}
	if q.dim <= 0 {
		return fmt.Errorf("ragcore: qdrant requires a positive embedding dimension")
	}
	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(q.dim),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: create qdrant collection: %v", ErrIndexUnavailable, err)
	}
	return nil
}

func chunkPointID(chunkID int64) *qdrant.PointId {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.FormatInt(chunkID, 10))).String()
	return qdrant.NewIDUUID(id)
}

func (q *qdrantIndex) Upsert(ctx context.Context, items []UpsertItem) error {
	return batchUpsert(ctx, items, func(ctx context.Context, batch []UpsertItem) error {
		points := make([]*qdrant.PointStruct, 0, len(batch))
		for _, item := range batch {
			vec := make([]float32, len(item.Embedding))
			copy(vec, item.Embedding)
			payload := qdrant.NewValueMap(map[string]any{
				payloadChunkIDField:    item.ChunkID,
				payloadDocumentIDField: item.DocumentID,
			})
			points = append(points, &qdrant.PointStruct{
				Id:      chunkPointID(item.ChunkID),
				Vectors: qdrant.NewVectorsDense(vec),
				Payload: payload,
			})
		}
		_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: q.collection,
			Points:         points,
		})
		return err
	})
}

func (q *qdrantIndex) Query(ctx context.Context, queryEmbedding []float32, k int) ([]Result, error) {
	if k <= 0 {
		k = 10
	}
	vec := make([]float32, len(queryEmbedding))
	copy(vec, queryEmbedding)
	limit := uint64(k)
	hits, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collection,
		Query:          qdrant.NewQueryDense(vec),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ragcore: qdrant query: %w", err)
	}
	out := make([]Result, 0, len(hits))
	for _, hit := range hits {
		var chunkID int64
		meta := map[string]string{}
		if hit.Payload != nil {
			if v, ok := hit.Payload[payloadChunkIDField]; ok {
				chunkID = int64(v.GetIntegerValue())
			}
			if v, ok := hit.Payload[payloadDocumentIDField]; ok {
				meta["document_id"] = strconv.FormatInt(v.GetIntegerValue(), 10)
			}
		}
		out = append(out, Result{
			ChunkID:  chunkID,
			Score:    float64(hit.Score),
			Metadata: meta,
		})
	}
	return out, nil
}

// DeleteDocument removes all points whose document_id payload field
// matches. Qdrant filters natively support this without client-side
// enumeration.
func (q *qdrantIndex) DeleteDocument(ctx context.Context, documentID int64) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatchInt(payloadDocumentIDField, documentID),
		},
	}
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collection,
		Points:         qdrant.NewPointsSelectorFilter(filter),
	})
	return err
}

// Optimize is a no-op for Qdrant: segment merging and compaction run
// continuously in the background per the collection's optimizer config,
// so there is nothing for a client-driven maintenance pass to trigger.
func (q *qdrantIndex) Optimize(ctx context.Context) error {
	return nil
}

func (q *qdrantIndex) Count(ctx context.Context) (int64, error) {
	n, err := q.client.Count(ctx, &qdrant.CountPoints{CollectionName: q.collection})
	if err != nil {
		return 0, fmt.Errorf("ragcore: qdrant count: %w", err)
	}
	return int64(n), nil
}

func (q *qdrantIndex) Stats(ctx context.Context) (Stats, error) {
	n, err := q.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		VectorCount: n,
		Dimension:   q.dim,
		Backend:     "qdrant",
		Tier:        "enterprise",
	}, nil
}
