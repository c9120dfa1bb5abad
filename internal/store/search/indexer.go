// Package search publishes computed scores to Elasticsearch so recruiter
// dashboards can query them without touching the primary database.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"ranking-workers/internal/common/errors"
	"ranking-workers/internal/common/logger"
	"ranking-workers/internal/ranking/engine"
)

const indexMapping = `{
  "mappings": {
    "properties": {
      "applicationId": {"type": "long"},
      "jobId":         {"type": "long"},
      "candidateId":   {"type": "long"},
      "resumeId":      {"type": "long"},
      "score":         {"type": "float"},
      "feedback":      {"type": "text"},
      "factors":       {"type": "object", "enabled": false},
      "scoredAt":      {"type": "date"}
    }
  }
}`

// Indexer is an engine.ScoreObserver. Documents are keyed by application id,
// so a rescore replaces the previous document.
type Indexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(client *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"index": index}),
	}
}

// EnsureIndex creates the score index with its mapping when it does not exist.
func (i *Indexer) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.index}, i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return errors.NewElasticsearchConnectionFailedError(err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return errors.NewIndexingFailedError(i.index, fmt.Errorf("index exists check: %s", res.Status()))
	}

	res, err = i.client.Indices.Create(i.index,
		i.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
		i.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return errors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewIndexingFailedError(i.index, fmt.Errorf("create index: %s", res.String()))
	}
	i.logger.Info("Created score index", nil)
	return nil
}

func (i *Indexer) ScoreSaved(ctx context.Context, event engine.ScoreEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.NewIndexingFailedError(i.index, err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: strconv.FormatInt(event.ApplicationID, 10),
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return errors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewIndexingFailedError(i.index, fmt.Errorf("index document: %s", res.String()))
	}

	i.logger.Debug("Indexed score", map[string]interface{}{
		"applicationId": event.ApplicationID,
		"score":         event.Score,
	})
	return nil
}
