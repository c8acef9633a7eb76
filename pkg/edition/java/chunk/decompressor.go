package chunk

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/sync/semaphore"

	"go.minekube.com/bot/pkg/edition/java/proto/packet"
)

// DefaultWorkers is the default number of concurrent decompressions.
const DefaultWorkers = 4

// Callback receives the columns of a decompressed packet or the error.
type Callback func(columns []Column, err error)

// Decompressor inflates chunk packets on a bounded number of goroutines
// so that the read loops handing them off are not stalled.
type Decompressor struct {
	log logr.Logger
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// NewDecompressor returns a Decompressor running at most workers
// decompressions at once. Workers <= 0 uses DefaultWorkers.
func NewDecompressor(workers int64, log logr.Logger) *Decompressor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Decompressor{
		log: log.WithName("chunk"),
		sem: semaphore.NewWeighted(workers),
	}
}

// Decompress inflates a MapChunkBulk or ChunkData packet in the background
// and passes the result to fn. It returns immediately. If ctx is canceled
// before a worker is free fn receives the context's error.
func (d *Decompressor) Decompress(ctx context.Context, p packet.Packet, fn Callback) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := ctx.Err(); err != nil {
			fn(nil, err)
			return
		}
		if err := d.sem.Acquire(ctx, 1); err != nil {
			fn(nil, err)
			return
		}
		defer d.sem.Release(1)
		fn(d.decompress(p))
	}()
}

func (d *Decompressor) decompress(p packet.Packet) ([]Column, error) {
	switch p := p.(type) {
	case *packet.MapChunkBulk:
		columns, err := ParseBulk(p.Data, p.SkyLight, p.Meta)
		if err != nil {
			return nil, err
		}
		d.log.V(2).Info("decompressed chunk bulk", "columns", len(columns), "compressed", len(p.Data))
		return columns, nil
	case *packet.ChunkData:
		column, err := ParseChunkData(p)
		if err != nil {
			return nil, err
		}
		return []Column{column}, nil
	default:
		return nil, fmt.Errorf("%T is not a chunk packet", p)
	}
}

// Wait blocks until all started decompressions called their callback.
func (d *Decompressor) Wait() {
	d.wg.Wait()
}
