package forest

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Status renders a human-readable summary of the engine's current state:
// the gap size, the size of the stable (pumping) subset, and the
// preimage-count vector, as an aligned table.
func (tb *TableMethod) Status() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"metric", "value"})
	t.AppendRow(table.Row{"gap size", tb.gapSize})
	t.AppendRow(table.Row{"gap interval", fmt.Sprintf("[%d, %d)", tb.currentGap[0], tb.currentGap[1])})
	t.AppendRow(table.Row{"stable subset size", tb.function.InfinityCount()})

	counts := table.NewWriter()
	counts.AppendHeader(table.Row{"value", "preimage count"})
	for v, n := range tb.function.PreimageCount() {
		counts.AppendRow(table.Row{v, n})
	}

	return t.Render() + "\n" + counts.Render()
}
