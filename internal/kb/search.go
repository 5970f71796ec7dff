// internal/kb/search.go

// Package kb looks up knowledge base solutions for diagnostic questions.
package kb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/models"
)

var ErrSearchTimeout = errors.New("SEARCH_TIMEOUT")

type Searcher struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewSearcher(client *elasticsearch.Client, index string, log logger.Logger) *Searcher {
	return &Searcher{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "kb"}),
	}
}

// SearchSolutions returns up to max solutions matching the free-text query,
// best match first.
func (s *Searcher) SearchSolutions(ctx context.Context, query string, max int) ([]models.Solution, error) {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^3", "keywords^2", "body"},
				"type":   "best_fields",
			},
		},
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		Size:  &max,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrSearchTimeout
		}
		return nil, fmt.Errorf("kb search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("kb search status: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Score  float64         `json:"_score"`
				Source models.Solution `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode kb search response: %w", err)
	}

	solutions := make([]models.Solution, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		sol := hit.Source
		sol.ID = hit.ID
		sol.Score = hit.Score
		solutions = append(solutions, sol)
	}

	s.logger.Debug("kb search completed", map[string]interface{}{
		"query": query,
		"hits":  len(solutions),
	})

	return solutions, nil
}
