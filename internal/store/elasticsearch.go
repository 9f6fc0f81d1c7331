// internal/store/elasticsearch.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"dining-concierge/internal/models"
)

// ElasticsearchIndex implements CandidateIndex over a single index. Only the
// ID and cuisine live here; the candidate scan never reads full records.
type ElasticsearchIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchIndex(client *elasticsearch.Client, index string) *ElasticsearchIndex {
	return &ElasticsearchIndex{client: client, index: index}
}

// candidateDoc is the minimal indexed document.
type candidateDoc struct {
	CuisineType string `json:"cuisine_type"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

func (e *ElasticsearchIndex) SearchByCuisine(ctx context.Context, cuisine string, limit int) ([]string, error) {
	query := map[string]interface{}{
		"size":    limit,
		"_source": false,
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"cuisine_type": cuisine,
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode candidate query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("candidate search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("candidate search: %s", res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode candidate response: %w", err)
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func (e *ElasticsearchIndex) IndexRestaurant(ctx context.Context, r models.Restaurant) error {
	doc, err := json.Marshal(candidateDoc{CuisineType: r.CuisineType})
	if err != nil {
		return fmt.Errorf("encode candidate doc: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: r.ID,
		Body:       bytes.NewReader(doc),
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("index candidate %s: %w", r.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index candidate %s: %s", r.ID, res.Status())
	}
	return nil
}
