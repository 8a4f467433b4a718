package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/toeirei/panaderia/internal/core"
)

// barWidth returns how many cells a value gets when max fills width cells.
// Any positive value gets at least one cell.
func barWidth(v, max decimal.Decimal, width int) int {
	if width <= 0 || !max.IsPositive() || !v.IsPositive() {
		return 0
	}
	n := int(v.Mul(decimal.NewFromInt(int64(width))).Div(max).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

// renderBarChart draws s as horizontal bars inside width columns.
func renderBarChart(s core.Series, width int) string {
	labelWidth := 0
	for _, l := range s.Labels {
		if w := lipgloss.Width(l); w > labelWidth {
			labelWidth = w
		}
	}
	valueWidth := 0
	for _, v := range s.Values {
		if w := len(v.String()); w > valueWidth {
			valueWidth = w
		}
	}
	room := width - labelWidth - valueWidth - 2
	if room < 5 {
		room = 5
	}

	max := s.Max()
	lines := []string{paneTitleStyle.Render(s.Label)}
	for i, v := range s.Values {
		label := ""
		if i < len(s.Labels) {
			label = s.Labels[i]
		}
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(label))
		bar := strings.Repeat("█", barWidth(v, max, room))
		lines = append(lines, label+pad+" "+barStyle.Render(bar)+" "+barValueStyle.Render(v.String()))
	}
	return strings.Join(lines, "\n")
}
