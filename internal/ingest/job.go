// internal/ingest/job.go
package ingest

import (
	"context"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
	"dining-concierge/internal/store"
)

// categoryAliases maps directory category slugs to the cuisine vocabulary
// the dialog validates against.
var categoryAliases = map[string]string{
	"indpak":   "indian",
	"italian":  "italian",
	"mexican":  "mexican",
	"chinese":  "chinese",
	"japanese": "japanese",
	"french":   "french",
	"greek":    "greek",
}

// categories is the fetch order; kept explicit so runs are reproducible.
var categories = []string{"indpak", "italian", "mexican", "chinese", "japanese", "french", "greek"}

// JobConfig bounds one ingestion run.
type JobConfig struct {
	Location       string
	PageSize       int
	PerCategoryCap int
}

// Job fetches listings per cuisine category and writes each record to both
// the record store and the candidate index. IDs already seen in the run are
// skipped; a listing can carry several category tags.
type Job struct {
	client  *DirectoryClient
	records store.RestaurantStore
	index   store.CandidateIndex
	config  JobConfig
	logger  logger.Logger
}

func NewJob(client *DirectoryClient, records store.RestaurantStore, index store.CandidateIndex,
	cfg JobConfig, log logger.Logger) *Job {
	return &Job{
		client:  client,
		records: records,
		index:   index,
		config:  cfg,
		logger:  log,
	}
}

// Run executes one full ingestion pass and returns how many records were
// written.
func (j *Job) Run(ctx context.Context) (int, error) {
	seen := make(map[string]bool)
	written := 0

	for _, category := range categories {
		cuisine := categoryAliases[category]
		fetched := 0

		for fetched < j.config.PerCategoryCap {
			limit := j.config.PageSize
			if remaining := j.config.PerCategoryCap - fetched; remaining < limit {
				limit = remaining
			}

			listings, err := j.client.Search(ctx, j.config.Location, category, limit, fetched)
			if err != nil {
				return written, errors.NewIngestFetchError(category, err)
			}
			if len(listings) == 0 {
				break
			}
			fetched += len(listings)

			for _, r := range listings {
				if seen[r.ID] {
					continue
				}
				seen[r.ID] = true
				r.CuisineType = cuisine

				if err := j.writeRecord(ctx, r); err != nil {
					return written, err
				}
				written++
			}
		}

		j.logger.Info("category ingested", map[string]interface{}{
			"category": category,
			"cuisine":  cuisine,
			"fetched":  fetched,
		})
	}

	j.logger.Info("ingestion run complete", map[string]interface{}{
		"written": written,
	})
	return written, nil
}

func (j *Job) writeRecord(ctx context.Context, r models.Restaurant) error {
	if err := j.records.Put(ctx, r); err != nil {
		return errors.NewIngestWriteError(r.ID, err)
	}
	if err := j.index.IndexRestaurant(ctx, r); err != nil {
		return errors.NewIngestWriteError(r.ID, err)
	}
	return nil
}
