package output

import "fmt"

// TruncateItems keeps the first maxItems items. The warning is nil when
// nothing was dropped.
func TruncateItems(items []any, maxItems int) ([]any, *Warning) {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	maxItems = min(maxItems, AbsoluteMaxItems)

	total := len(items)
	if total <= maxItems {
		return items, nil
	}

	return items[:maxItems], &Warning{
		Shown: maxItems,
		Total: total,
		Message: fmt.Sprintf("Output truncated. Showing %d of %d items. Use limit and continue, "+
			"or a labelSelector or fieldSelector query parameter, for complete results.", maxItems, total),
	}
}
