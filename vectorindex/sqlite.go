package vectorindex

import (
	"context"
	"strconv"

	"github.com/ragserve/core/store"
)

// sqliteIndex adapts the teacher's embedded vec0 virtual table
// (store.Store.InsertEmbedding/VectorSearch) to the Index interface.
type sqliteIndex struct {
	st  *store.Store
	dim int
}

func newSQLiteIndex(st *store.Store, dim int) *sqliteIndex {
	return &sqliteIndex{st: st, dim: dim}
}

// EnsureCollection is a no-op: the vec0 table is created by
// store.New's schema migration.
func (i *sqliteIndex) EnsureCollection(ctx context.Context) error {
	return nil
}

func (i *sqliteIndex) Upsert(ctx context.Context, items []UpsertItem) error {
	return batchUpsert(ctx, items, func(ctx context.Context, batch []UpsertItem) error {
		for _, item := range batch {
			if err := i.st.InsertEmbedding(ctx, item.ChunkID, item.Embedding); err != nil {
				return err
			}
		}
		return nil
	})
}

func (i *sqliteIndex) Query(ctx context.Context, queryEmbedding []float32, k int) ([]Result, error) {
	rows, err := i.st.VectorSearch(ctx, queryEmbedding, k)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(rows))
	for _, r := range rows {
		out = append(out, Result{
			ChunkID: r.ChunkID,
			Score:   r.Score,
			Metadata: map[string]string{
				"document_id": strconv.FormatInt(r.DocumentID, 10),
				"heading":     r.Heading,
			},
		})
	}
	return out, nil
}

// DeleteDocument relies on DeleteDocumentData, which deletes the
// document's vec_chunks rows explicitly and then its chunks.
func (i *sqliteIndex) DeleteDocument(ctx context.Context, documentID int64) error {
	return i.st.DeleteDocumentData(ctx, documentID)
}

func (i *sqliteIndex) Count(ctx context.Context) (int64, error) {
	stats, err := i.st.DBStats(ctx)
	if err != nil {
		return 0, err
	}
	return int64(stats.Embeddings), nil
}

// Optimize runs ANALYZE against the vec0 virtual table so SQLite's query
// planner keeps accurate cardinality estimates as the table grows.
func (i *sqliteIndex) Optimize(ctx context.Context) error {
	_, err := i.st.DB().ExecContext(ctx, "ANALYZE vec_chunks")
	return err
}

func (i *sqliteIndex) Stats(ctx context.Context) (Stats, error) {
	n, err := i.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		VectorCount: n,
		Dimension:   i.dim,
		Backend:     "sqlite-vec",
		Tier:        "embedded",
	}, nil
}
