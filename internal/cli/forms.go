package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/cli/formatter"
)

func momentumHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateQuantity accepts empty or a finite non-negative number.
func validateQuantity(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := parseQuantity(s)
	return err
}

func parseQuantity(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("enter a non-negative number")
	}
	return v, nil
}

// entryField is one activity row of the daily entry form.
type entryField struct {
	row     app.BrowseRow
	prior   app.DayEntry
	hadPrev bool
	value   string
}

// newEntryForm builds one input per activity, grouped by phase, prefilled
// with what is already recorded for the date.
func newEntryForm(date string, rows []app.BrowseRow, existing map[string]app.DayEntry) (*huh.Form, []*entryField) {
	var (
		fields []*entryField
		groups []*huh.Group
		inputs []huh.Field
		phase  string
	)
	flush := func() {
		if len(inputs) > 0 {
			groups = append(groups, huh.NewGroup(inputs...).Title(phase))
			inputs = nil
		}
	}

	for _, r := range rows {
		key := r.WBSCode + "/" + r.PhaseCode
		if key != phase {
			flush()
			phase = key
		}
		f := &entryField{row: r}
		if e, ok := existing[r.ActivityID]; ok {
			f.prior, f.hadPrev = e, true
			f.value = formatter.FormatQty(e.Quantity)
		}
		fields = append(fields, f)
		inputs = append(inputs, huh.NewInput().
			Title(r.Description).
			Description(fmt.Sprintf("%s %s of %s on %s", formatter.FormatQty(r.CompletedQty), r.Unit, formatter.FormatQty(r.Quantity), date)).
			Placeholder("0").
			Value(&f.value).
			Validate(validateQuantity))
	}
	flush()

	return huh.NewForm(groups...).WithTheme(momentumHuhTheme()).WithShowHelp(false), fields
}

// changedInputs turns completed form fields into a save batch. Fields left
// as they were are not sent. Clearing a prior value sends zero.
func changedInputs(fields []*entryField) ([]app.EntryInput, error) {
	var out []app.EntryInput
	for _, f := range fields {
		raw := strings.TrimSpace(f.value)
		if raw == "" {
			if f.hadPrev {
				out = append(out, app.EntryInput{ActivityID: f.row.ActivityID})
			}
			continue
		}
		q, err := parseQuantity(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.row.Description, err)
		}
		if f.hadPrev && q == f.prior.Quantity {
			continue
		}
		if !f.hadPrev && q == 0 {
			continue
		}
		out = append(out, app.EntryInput{ActivityID: f.row.ActivityID, Quantity: q, Notes: f.prior.Notes})
	}
	return out, nil
}
