package simulation

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render formats the report as a boxed table
func (r *Report) Render() string {
	keys := []string{"Game", "Seed", "Rounds", "Wagered", "Returned", "RTP", "RTP 95% CI", "Std Dev", "Wins", "Losses", "Pushes"}
	values := map[string]string{
		"Game":       r.Game,
		"Seed":       fmt.Sprintf("%d", r.Seed),
		"Rounds":     fmt.Sprintf("%d", r.Rounds),
		"Wagered":    fmt.Sprintf("%d", r.Wagered),
		"Returned":   fmt.Sprintf("%d", r.Returned),
		"RTP":        fmt.Sprintf("%.4f%%", r.RTP*100),
		"RTP 95% CI": fmt.Sprintf("%.4f%% ~ %.4f%%", r.CI95Low*100, r.CI95High*100),
		"Std Dev":    fmt.Sprintf("%.4f", r.StdDev),
		"Wins":       fmt.Sprintf("%d", r.Wins),
		"Losses":     fmt.Sprintf("%d", r.Losses),
		"Pushes":     fmt.Sprintf("%d", r.Pushes),
	}

	return fmtTable("Simulation Report", keys, values)
}

func fmtTable(title string, keys []string, values map[string]string) string {
	maxKeyLen := 0
	maxValLen := 0
	for _, k := range keys {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(values[k]); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString("|" + blank(left) + title + blank(right) + "|\n")
	sb.WriteString(divider)
	for _, k := range keys {
		v := values[k]
		sb.WriteString("| " + k + blank(maxKeyLen-2-runewidth.StringWidth(k)) + " | " + v + blank(maxValLen-2-runewidth.StringWidth(v)) + " |\n")
	}
	sb.WriteString(divider)

	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
