package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/moniburnejko/stock-analysis-tool/internal/summary"
)

// FormatRunReport formats a completed run for a Telegram message.
func FormatRunReport(symbol string, sum *summary.Summary, csvPath, chartPath string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s analysis</b> | %s\n\n", symbol, time.Now().Format("2006-01-02")))
	for _, f := range sum.Fields() {
		b.WriteString(fmt.Sprintf("%s: %s\n", f[0], f[1]))
	}
	b.WriteString(fmt.Sprintf("\nCSV: %s\nChart: %s\n", csvPath, chartPath))

	return b.String()
}
