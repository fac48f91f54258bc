package ui

import "fmt"

// Label formats a fixed-width ordinal prefix for item i of total, 1-based.
// The ordinal is right-aligned to the digit count of total so that labels
// for one run are all the same width: Label(3, 12) == "[ 3/12]".
func Label(i, total int) string {
	width := len(fmt.Sprint(total))
	return fmt.Sprintf("[%*d/%d]", width, i, total)
}
