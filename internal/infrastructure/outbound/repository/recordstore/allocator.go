package recordstore

import (
	"context"
	"log/slog"
)

// CounterAllocator issues post ids from a counter persisted with the transaction.
// Values already used as post keys are skipped, so ids are never reused even when
// the counter is missing or lags behind imported data.
type CounterAllocator struct {
	tx *Transaction
}

func (a *CounterAllocator) NextPostID(ctx context.Context) (int64, error) {
	if err := a.tx.checkWritable(); err != nil {
		return 0, err
	}
	counters, err := a.tx.loadCounters(ctx)
	if err != nil {
		return 0, err
	}
	posts, err := a.tx.loadPosts(ctx)
	if err != nil {
		return 0, err
	}

	next := counters[postIDCounter] + 1
	for posts.Has(postKey(next)) {
		next++
	}
	counters[postIDCounter] = next
	a.tx.dirtyCounters = true

	a.tx.db.log.Debug("Allocated post id", slog.Int64("id", next))
	return next, nil
}
