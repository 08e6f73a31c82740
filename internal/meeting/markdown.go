package meeting

import (
	"fmt"
	"strings"
)

// TaskList renders items as a markdown task list, one line per item:
//
//	- [x] task (owner, due) #tag #tag
func TaskList(items []ActionItem) string {
	var b strings.Builder
	for _, item := range items {
		box := " "
		if item.Completed {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s (%s, %s)", box, item.Task, item.OwnerLabel(), item.DueLabel())
		if len(item.Tags) > 0 {
			b.WriteString(" #" + strings.Join(item.Tags, " #"))
		}
		b.WriteRune('\n')
	}
	return b.String()
}
