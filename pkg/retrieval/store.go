package retrieval

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// vectorStore is the sole owner of Qdrant operations; one instance
// serves every corpus collection, addressed by name. Distance is L2
// (Euclid), matching the engine's "ascending distance" retrieval
// contract. Vectors are stored exactly as the embedder returns them;
// nothing in this package normalizes them.
type vectorStore struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
}

func newVectorStore(addr string) (*vectorStore, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("retrieval: dial qdrant %s: %w", addr, err)
	}
	return &vectorStore{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
	}, nil
}

func (v *vectorStore) Close() error {
	return v.conn.Close()
}

// ensureCollection creates the named collection if it does not exist.
func (v *vectorStore) ensureCollection(ctx context.Context, collection string, dims int) error {
	list, err := v.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("retrieval: list collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == collection {
			return nil
		}
	}

	_, err = v.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(dims),
					Distance: pb.Distance_Euclid,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("retrieval: create collection %s: %w", collection, err)
	}
	return nil
}

// collectionExists reports whether the named collection has been created.
func (v *vectorStore) collectionExists(ctx context.Context, collection string) (bool, error) {
	list, err := v.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return false, fmt.Errorf("retrieval: list collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == collection {
			return true, nil
		}
	}
	return false, nil
}

// deleteCollection removes a corpus's collection entirely. Nothing in
// this package calls it; Build upserts into an existing collection
// without deleting it first.
func (v *vectorStore) deleteCollection(ctx context.Context, collection string) error {
	_, err := v.collections.Delete(ctx, &pb.DeleteCollection{CollectionName: collection})
	if err != nil {
		return fmt.Errorf("retrieval: delete collection %s: %w", collection, err)
	}
	return nil
}

// storedPoint is one chunk persisted alongside its embedding.
type storedPoint struct {
	id        string
	embedding []float32
	text      string
	sourceDoc string
	offsetID  int
}

func (v *vectorStore) upsert(ctx context.Context, collection string, pts []storedPoint) error {
	if len(pts) == 0 {
		return nil
	}
	points := make([]*pb.PointStruct, len(pts))
	for i, p := range pts {
		points[i] = &pb.PointStruct{
			Id: &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: p.id}},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: p.embedding}},
			},
			Payload: map[string]*pb.Value{
				"text":       {Kind: &pb.Value_StringValue{StringValue: p.text}},
				"source_doc": {Kind: &pb.Value_StringValue{StringValue: p.sourceDoc}},
				"offset_id":  {Kind: &pb.Value_IntegerValue{IntegerValue: int64(p.offsetID)}},
			},
		}
	}

	wait := true
	_, err := v.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("retrieval: upsert %d points into %s: %w", len(pts), collection, err)
	}
	return nil
}

// searchHit is one raw Qdrant search result before conversion to a
// domain.RetrievalResult.
type searchHit struct {
	score     float32
	text      string
	sourceDoc string
	offsetID  int
}

func (v *vectorStore) search(ctx context.Context, collection string, embedding []float32, topK int) ([]searchHit, error) {
	resp, err := v.points.Search(ctx, &pb.SearchPoints{
		CollectionName: collection,
		Vector:         embedding,
		Limit:          uint64(topK),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("retrieval: search %s: %w", collection, err)
	}

	hits := make([]searchHit, len(resp.GetResult()))
	for i, r := range resp.GetResult() {
		payload := r.GetPayload()
		hits[i] = searchHit{
			score:     r.GetScore(),
			text:      payload["text"].GetStringValue(),
			sourceDoc: payload["source_doc"].GetStringValue(),
			offsetID:  int(payload["offset_id"].GetIntegerValue()),
		}
	}
	return hits, nil
}
