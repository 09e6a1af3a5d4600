package theme

import (
	"fmt"

	"github.com/glazekit/glaze/internal/merge"
)

// CompileStyles applies each slot's style function stack to the resolved
// variables and merges the outputs in stack order. Function-valued entries
// inside style objects compose across layers; a shape mismatch between
// layers fails with the offending slot and path.
func CompileStyles(stacks map[string][]SlotStyleFunc, vars *merge.Value, ctx RenderContext) (map[string]*merge.Value, error) {
	styles := make(map[string]*merge.Value, len(stacks))
	for slot, stack := range stacks {
		layers := make([]*merge.Value, 0, len(stack))
		for _, fn := range stack {
			if fn == nil {
				continue
			}
			layers = append(layers, fn(vars, ctx))
		}
		merged, err := merge.Merge(layers...)
		if err != nil {
			return nil, newResolutionError(ErrCodeStyle,
				fmt.Sprintf("compiling styles for slot %q", slot), err,
				map[string]any{"slot": slot})
		}
		if merged.IsNil() {
			merged = merge.EmptyMap()
		}
		styles[slot] = merged
	}
	return styles, nil
}
