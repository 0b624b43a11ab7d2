package formatter

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jinzhu/inflection"
	"github.com/momentumhq/momentum/internal/domain"
)

// RenderBox wraps content in a rounded-border box.
func RenderBox(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 2).
		Render(content)
}

// StatusPill returns a colored indicator for a project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On hold")
	case domain.ProjectCompleted:
		return StyleBlue.Render("✔ Completed")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMH renders man-hours with one decimal place.
func FormatMH(mh float64) string {
	return strconv.FormatFloat(mh, 'f', 1, 64)
}

// FormatQty renders a quantity without trailing zeros.
func FormatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// Count renders n with a singular or plural noun: "1 activity", "3 activities".
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", inflection.Singular(noun))
	}
	return fmt.Sprintf("%d %s", n, inflection.Plural(noun))
}

func orDash(s string) string {
	if s == "" {
		return StyleDim.Render("--")
	}
	return s
}
