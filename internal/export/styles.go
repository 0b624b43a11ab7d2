package export

import (
	"fmt"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/xuri/excelize/v2"
)

type styles struct {
	title, subtitle, header, wbs, phase, detail, summary int
}

func (s *styles) forKind(k app.ExportRowKind) int {
	switch k {
	case app.ExportRowWBS:
		return s.wbs
	case app.ExportRowPhase:
		return s.phase
	default:
		return s.detail
	}
}

func newStyles(f *excelize.File) (*styles, error) {
	s := &styles{}
	defs := []struct {
		dst   *int
		name  string
		style *excelize.Style
	}{
		{&s.title, "title", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&s.subtitle, "subtitle", &excelize.Style{Font: &excelize.Font{Size: 11}}},
		{&s.header, "header", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    thinBorders(),
		}},
		{&s.wbs, "wbs", &excelize.Style{
			Font:   &excelize.Font{Bold: true, Size: 10},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
			Border: thinBorders(),
			NumFmt: 2,
		}},
		{&s.phase, "phase", &excelize.Style{
			Font:   &excelize.Font{Bold: true, Size: 10},
			Border: thinBorders(),
			NumFmt: 2,
		}},
		{&s.detail, "detail", &excelize.Style{
			Font:   &excelize.Font{Size: 10},
			Border: thinBorders(),
			NumFmt: 2,
		}},
		{&s.summary, "summary", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "right"},
			NumFmt:    2,
		}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return s, nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
