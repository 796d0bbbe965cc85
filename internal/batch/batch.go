// Package batch partitions reviewable files into character-budgeted batches.
package batch

import "github.com/techweeksl/prreview/internal/domain"

// DefaultCharLimit is the default combined patch size per batch.
const DefaultCharLimit = 150_000

// Plan splits files into ordered batches whose combined patch length stays
// under limit. The pass is greedy and order-preserving: a file is never
// split across batches, and a single file larger than the limit becomes a
// batch of its own rather than being dropped. Empty input yields no batches.
func Plan(files []domain.ReviewableFile, limit int) []domain.Batch {
	var batches []domain.Batch
	var current domain.Batch
	size := 0

	for _, f := range files {
		if len(current) > 0 && size+len(f.Patch) > limit {
			batches = append(batches, current)
			current = nil
			size = 0
		}
		current = append(current, f)
		size += len(f.Patch)
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}
