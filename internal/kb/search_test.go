// internal/kb/search_test.go
package kb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-assistant/internal/common/logger"
)

func newTestSearcher(t *testing.T, handler http.HandlerFunc) *Searcher {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Satisfy the client's product check.
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewSearcher(client, "helpdesk-solutions", logger.NewTestLogger(t))
}

func TestSearchSolutions(t *testing.T) {
	var gotBody map[string]interface{}
	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
			"hits": {
				"hits": [
					{"_id": "sol-1", "_score": 2.5, "_source": {"title": "Printer offline", "body": "Power cycle the printer."}},
					{"_id": "sol-2", "_score": 1.1, "_source": {"title": "Driver reinstall", "body": "Reinstall the driver."}}
				]
			}
		}`))
	})

	solutions, err := searcher.SearchSolutions(context.Background(), "printer not working", 3)
	require.NoError(t, err)
	require.Len(t, solutions, 2)
	assert.Equal(t, "sol-1", solutions[0].ID)
	assert.Equal(t, "Printer offline", solutions[0].Title)
	assert.InDelta(t, 2.5, solutions[0].Score, 0.001)

	// best_fields multi_match over the weighted fields
	query := gotBody["query"].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "printer not working", query["query"])
	assert.Contains(t, query["fields"], "title^3")
}

func TestSearchSolutions_ErrorStatus(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "shard failure"}`))
	})

	_, err := searcher.SearchSolutions(context.Background(), "anything", 3)
	assert.Error(t, err)
}

func TestSearchSolutions_NoHits(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hits": {"hits": []}}`))
	})

	solutions, err := searcher.SearchSolutions(context.Background(), "nothing matches", 3)
	require.NoError(t, err)
	assert.Empty(t, solutions)
}
