package rag

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/integration/common"
	pkgRetry "github.com/futig/interview-backend/internal/pkg/retry"
	pkghttp "github.com/futig/interview-backend/pkg/http"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	probeCacheKey = "probe"
	probeQuery    = "interview question"
	mmrReRank     = "mmr"
	docIDPrefix   = "doc-"
	titleKey      = "title"
)

// Connector queries and indexes documents in a Vectara style corpus.
type Connector struct {
	config    config.RetrievalConfig
	connector *pkghttp.Connector
	probes    *cache.Cache
	indexed   *cache.Cache
}

func NewConnector(
	cfg config.RetrievalConfig,
	logger *zap.Logger,
) *Connector {
	headers := pkghttp.WithStaticHeaders(map[string]string{
		"x-api-key":   cfg.Token,
		"customer-id": cfg.CustomerID,
	})

	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger, headers),
		config:    cfg,
		probes:    cache.New(cfg.ProbeTTL, 2*cfg.ProbeTTL),
		indexed:   cache.New(cfg.IndexCacheTTL, 2*cfg.IndexCacheTTL),
	}
}

// Available probes the corpus with a one result query.
// Success is cached for ProbeTTL and failure for ProbeFailureTTL. A probe
// canceled by its caller is not cached; a timed out one counts as failure.
func (c *Connector) Available(ctx context.Context) bool {
	if cached, ok := c.probes.Get(probeCacheKey); ok {
		return cached.(bool)
	}

	_, err := c.query(ctx, c.buildQuery(probeQuery, entity.RetrievalContext{}, 1, nil))
	if err == nil {
		c.probes.Set(probeCacheKey, true, c.config.ProbeTTL)
		return true
	}

	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		ctxzap.Debug(ctx, "retrieval probe interrupted", zap.Error(err))
		return false
	}

	ctxzap.Warn(ctx, "retrieval probe failed", zap.Error(err))
	c.probes.Set(probeCacheKey, false, c.config.ProbeFailureTTL)
	return false
}

// Retrieve runs an MMR re-ranked query grounded on the job description and resume.
func (c *Connector) Retrieve(
	ctx context.Context,
	query string,
	rc entity.RetrievalContext,
	numResults int,
	diversityBias float64,
) ([]entity.RetrievedPassage, error) {
	ctxzap.Debug(ctx, "querying retrieval corpus",
		zap.String("query", query),
		zap.Int("num_results", numResults),
	)

	req := c.buildQuery(query, rc, numResults, &diversityBias)
	resp, err := c.query(ctx, req)
	if err != nil {
		ctxzap.Error(ctx, "retrieval query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", entity.ErrRetrievalUnavailable, err)
	}

	var passages []entity.RetrievedPassage
	if len(resp.ResponseSet) > 0 {
		for _, item := range resp.ResponseSet[0].Response {
			if strings.TrimSpace(item.Text) == "" {
				continue
			}
			passages = append(passages, entity.RetrievedPassage{Text: item.Text, Score: item.Score})
		}
	}

	ctxzap.Debug(ctx, "retrieval query completed", zap.Int("passage_count", len(passages)))
	return passages, nil
}

// Index stores a document in the corpus and returns its id.
// Identical text is indexed once per cache TTL.
func (c *Connector) Index(ctx context.Context, text string, metadata map[string]string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("document text must not be empty")
	}

	sum := sha256.Sum256([]byte(text))
	hash := hex.EncodeToString(sum[:])
	if id, ok := c.indexed.Get(hash); ok {
		ctxzap.Debug(ctx, "document already indexed", zap.String("document_id", id.(string)))
		return id.(string), nil
	}

	title := metadata[titleKey]
	rest := make(map[string]string, len(metadata))
	for k, v := range metadata {
		if k != titleKey {
			rest[k] = v
		}
	}
	metaJSON, err := json.Marshal(rest)
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}

	docID := docIDPrefix + uuid.NewString()
	req := &entity.RAGIndexRequest{
		CustomerID: c.config.CustomerID,
		CorpusID:   c.config.CorpusID,
		Document: entity.RAGDocument{
			DocumentID:   docID,
			Title:        title,
			MetadataJSON: string(metaJSON),
			Section:      []entity.RAGSection{{Text: text}},
		},
	}

	ctxzap.Info(ctx, "indexing document in retrieval corpus",
		zap.String("document_id", docID),
		zap.String("title", title),
		zap.Int("text_length", len(text)),
	)

	_, err = pkgRetry.Do(ctx, &c.config.Retry, pkghttp.IsTemporary, func() (struct{}, error) {
		var resp entity.RAGIndexResponse
		return struct{}{}, c.connector.DoRequest(ctx, http.MethodPost, c.config.IndexEndpoint, req, &resp)
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to index document", zap.Error(err))
		return "", fmt.Errorf("index document: %w", err)
	}

	c.indexed.SetDefault(hash, docID)
	ctxzap.Info(ctx, "document indexed successfully", zap.String("document_id", docID))
	return docID, nil
}

func (c *Connector) buildQuery(query string, rc entity.RetrievalContext, numResults int, bias *float64) *entity.RAGQueryRequest {
	q := entity.RAGQuery{
		Query:      query,
		NumResults: numResults,
		CorpusKey: []entity.CorpusKey{{
			CustomerID: c.config.CustomerID,
			CorpusID:   c.config.CorpusID,
		}},
		Context: buildContext(rc),
	}
	if bias != nil {
		q.ReRank = mmrReRank
		q.MMRDiversityBias = bias
	}
	return &entity.RAGQueryRequest{Query: []entity.RAGQuery{q}}
}

func (c *Connector) query(ctx context.Context, req *entity.RAGQueryRequest) (*entity.RAGQueryResponse, error) {
	return pkgRetry.Do(ctx, &c.config.Retry, pkghttp.IsTemporary, func() (*entity.RAGQueryResponse, error) {
		var resp entity.RAGQueryResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.QueryEndpoint, req, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
}

func buildContext(rc entity.RetrievalContext) string {
	if rc.JobDescription == "" && rc.ResumeText == "" {
		return ""
	}
	return fmt.Sprintf("Job Description: %s\n\nResume: %s", rc.JobDescription, rc.ResumeText)
}
