package validator

import (
	"context"
	"runtime"
	"sync"

	"github.com/erraggy/recordcheck/schema"
)

// ValidateMany validates records against s concurrently and returns one
// result per record, in input order. At most runtime.GOMAXPROCS(0) records
// are validated at once. When ctx is canceled the records not yet started
// are skipped and ctx.Err() is returned with the results gathered so far
// (skipped entries are nil).
func (v *Validator) ValidateMany(ctx context.Context, records []any, s *schema.Schema) ([]*ValidationResult, error) {
	results := make([]*ValidationResult, len(records))
	if len(records) == 0 {
		return results, ctx.Err()
	}

	workers := min(runtime.GOMAXPROCS(0), len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = v.Validate(records[i], s)
			}
		}()
	}

	var err error
feed:
	for i := range records {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	v.logger().Debug("batch validated", "records", len(records), "workers", workers)
	return results, err
}
