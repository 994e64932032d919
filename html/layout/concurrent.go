package layout

import (
	"sync"

	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/logger"
)

// Job is one inline formatting context to lay out with [LayoutAll].
type Job struct {
	IFC             *InlineFormattingContext
	ContainingBlock bo.ContainingBlock
}

// LayoutAll lays out independent inline formatting contexts in parallel,
// without float state. Results are returned in the order of [jobs].
// The contexts must not share inline boxes, and the independent boxes
// they contain must be safe for concurrent layout.
func LayoutAll(jobs []Job) []LayoutResult {
	out := make([]LayoutResult, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			out[i] = job.IFC.Layout(job.ContainingBlock, nil)
		}(i, job)
	}
	wg.Wait()

	lines := 0
	for _, res := range out {
		lines += len(res.Fragments)
	}
	logger.ProgressLogger.Printf("Laid out %d inline formatting contexts (%d lines)", len(jobs), lines)
	return out
}
