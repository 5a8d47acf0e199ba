// Package dispatcher fans independent digest computations out over a
// bounded pool of goroutines.
package dispatcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JakeFAU/sha256digest/internal/digest"
	"github.com/JakeFAU/sha256digest/internal/logging"
	"github.com/JakeFAU/sha256digest/internal/metrics"
)

// Dispatcher hashes batches of inputs in parallel.
type Dispatcher struct {
	hasher      digest.Hasher
	concurrency int
	source      digest.Source
	logger      *zap.Logger
}

// New creates a Dispatcher. A concurrency below one is treated as one.
func New(hasher digest.Hasher, concurrency int, source digest.Source, logger *zap.Logger) *Dispatcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Dispatcher{
		hasher:      hasher,
		concurrency: concurrency,
		source:      source,
		logger:      logging.OrNop(logger),
	}
}

// Run hashes every input and returns results in input order. Inputs not
// yet started when ctx is canceled are skipped and Run returns the
// context error; a digest already in progress always completes.
func (d *Dispatcher) Run(ctx context.Context, inputs []digest.Input) ([]digest.Result, error) {
	results := make([]digest.Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i := range inputs {
		idx := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("digest %d canceled: %w", idx, err)
			}
			res, err := d.hashOne(inputs[idx])
			if err != nil {
				return fmt.Errorf("digest %d (%s): %w", idx, inputs[idx].Label, err)
			}
			results[idx] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Dispatcher) hashOne(in digest.Input) (digest.Result, error) {
	start := time.Now()
	sum, err := d.hasher.Hash(in.Message)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveDigest(string(d.source), metrics.StatusError, len(in.Message), elapsed)
		d.logger.Error("digest failed",
			zap.String("label", in.Label),
			zap.Int("size", len(in.Message)),
			zap.Error(err),
		)
		return digest.Result{}, err
	}
	metrics.ObserveDigest(string(d.source), metrics.StatusOK, len(in.Message), elapsed)
	d.logger.Debug("digest computed",
		zap.String("label", in.Label),
		zap.Int("size", len(in.Message)),
		zap.Duration("elapsed", elapsed),
	)
	return digest.Result{Label: in.Label, Digest: sum, Size: len(in.Message)}, nil
}
