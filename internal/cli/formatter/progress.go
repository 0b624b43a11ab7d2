package formatter

import (
	"fmt"
	"strings"

	"github.com/momentumhq/momentum/internal/rollup"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% for a whole-number
// percent, colored by its roll-up status.
func RenderProgress(percent int, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if width < 2 {
		width = 2
	}

	filled := percent * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	style := ProgressColor(rollup.StatusFor(percent))
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), percent)
}
