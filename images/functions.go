package images

import (
	"runtime"
	"sync"
)

// minRowsPerWorker keeps tiny images on the calling goroutine.
const minRowsPerWorker = 16

// Parallel splits [0, dataSize) into contiguous partitions and runs fn on
// each from its own goroutine, returning once every partition is done.
// Partitions never overlap, so fn may write to disjoint rows without
// locking.
//
// Arguments:
// - dataSize: The number of items (rows) to process.
// - fn: Function to execute for each partition (receives start and end indices).
//
// @example
//
//	Parallel(img.Height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // process row y
//	    }
//	})
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	if dataSize <= 0 {
		return
	}

	numGoroutines := runtime.GOMAXPROCS(0)
	if maxParts := dataSize / minRowsPerWorker; maxParts < numGoroutines {
		numGoroutines = maxParts
	}
	if numGoroutines <= 1 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize
		// Last partition picks up the remainder.
		if i == numGoroutines-1 {
			partEnd = dataSize
		}

		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
}
