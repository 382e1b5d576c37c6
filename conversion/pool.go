package conversion

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
)

// Conversion re-runs on every keystroke, and every run needs a table of
// chain records. To avoid re-allocating these small objects on each
// keystroke we pool the scratch tables.
type dpScratch struct {
	records []chainRecord
}

// reset prepares the scratch for a sequence of length n.
func (scratch *dpScratch) reset(n int) {
	if cap(scratch.records) < n+1 {
		scratch.records = make([]chainRecord, n+1)
	} else {
		scratch.records = scratch.records[:n+1]
		for i := range scratch.records {
			scratch.records[i] = chainRecord{}
		}
	}
}

type scratchPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalScratchPool *scratchPool

func init() {
	globalScratchPool = &scratchPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &dpScratch{}, nil
		})
	globalScratchPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalScratchPool.opool = pool.NewObjectPool(globalScratchPool.ctx, factory, config)
}

func borrowScratch(n int) *dpScratch {
	o, _ := globalScratchPool.opool.BorrowObject(globalScratchPool.ctx)
	scratch := o.(*dpScratch)
	scratch.reset(n)
	return scratch
}

func releaseScratch(scratch *dpScratch) {
	_ = globalScratchPool.opool.ReturnObject(globalScratchPool.ctx, scratch)
}
