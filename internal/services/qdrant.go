package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
)

const embeddingSize = 768

// ResumeIndex stores résumé chunk embeddings for similarity search.
type ResumeIndex interface {
	InitCollection(ctx context.Context) error
	UpsertResume(ctx context.Context, resumeID, originalName string, chunks []string, embeddings [][]float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, excludeResumeID string, limit int) ([]SearchResult, error)
	DeleteResume(ctx context.Context, resumeID string) error
}

type SearchResult struct {
	ResumeID     string
	OriginalName string
	Score        float32
	Text         string
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	log            *zap.Logger
}

func NewQdrantService(urlStr, apiKey, collectionName string, log *zap.Logger) (ResumeIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// gRPC port unless the URL names one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     embeddingSize,
		log:            logger.OrNop(log),
	}, nil
}

// InitCollection implements ResumeIndex.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		q.log.Debug("qdrant collection exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.log.Info("qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// chunkPointID is stable per résumé chunk so re-indexing overwrites points.
func chunkPointID(resumeID string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("resume:%s:%d", resumeID, index))).String()
}

// UpsertResume implements ResumeIndex. Points of an earlier version of the
// résumé are removed first.
func (q *qdrantService) UpsertResume(ctx context.Context, resumeID, originalName string, chunks []string, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("got %d chunks but %d embeddings", len(chunks), len(embeddings))
	}
	if err := q.DeleteResume(ctx, resumeID); err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for i, chunk := range chunks {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(chunkPointID(resumeID, i)),
			Vectors: qdrant.NewVectors(embeddings[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"resume_id":     resumeID,
				"original_name": originalName,
				"chunk_index":   int64(i),
				"text":          chunk,
			}),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

// SearchSimilar implements ResumeIndex. Results hold the best matching chunk
// of each résumé, best first.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, excludeResumeID string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	var filter *qdrant.Filter
	if excludeResumeID != "" {
		filter = &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewMatch("resume_id", excludeResumeID),
			},
		}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit * 4)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	hits := make([]SearchResult, 0, len(points))
	for _, point := range points {
		hits = append(hits, SearchResult{
			ResumeID:     payloadString(point.Payload, "resume_id"),
			OriginalName: payloadString(point.Payload, "original_name"),
			Text:         payloadString(point.Payload, "text"),
			Score:        point.Score,
		})
	}
	return BestPerResume(hits, limit), nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}

// BestPerResume keeps the first hit of every résumé, in order, up to limit.
// hits must be sorted best first.
func BestPerResume(hits []SearchResult, limit int) []SearchResult {
	seen := make(map[string]struct{}, len(hits))
	out := make([]SearchResult, 0, limit)
	for _, hit := range hits {
		if hit.ResumeID == "" {
			continue
		}
		if _, ok := seen[hit.ResumeID]; ok {
			continue
		}
		seen[hit.ResumeID] = struct{}{}
		out = append(out, hit)
		if len(out) == limit {
			break
		}
	}
	return out
}

// DeleteResume implements ResumeIndex.
func (q *qdrantService) DeleteResume(ctx context.Context, resumeID string) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{
						qdrant.NewMatch("resume_id", resumeID),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume points: %w", err)
	}
	return nil
}
