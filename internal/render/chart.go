// Package render draws the price/SMA chart image for a run.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/moniburnejko/stock-analysis-tool/internal/series"
)

// Theme holds the cosmetic chart configuration. It is plain data passed to
// Chart, never global state.
type Theme struct {
	Background color.Color
	Frame      color.Color
	Label      color.Color
	Tick       color.Color
	Grid       color.Color
	Price      color.Color
	SMA        color.Color
}

// DefaultTheme is the dark palette used for report charts.
func DefaultTheme() Theme {
	return Theme{
		Background: rgb(0x0F, 0x1B, 0x2B),
		Frame:      rgb(0x2A, 0x3A, 0x55),
		Label:      rgb(0xC8, 0xD6, 0xF0),
		Tick:       rgb(0x9F, 0xB4, 0xD0),
		Grid:       rgb(0x22, 0x32, 0x4A),
		Price:      rgb(0x7A, 0xD9, 0xC7),
		SMA:        rgb(0xD1, 0x6F, 0x60),
	}
}

func rgb(r, g, b uint8) color.Color {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Chart renders two time-aligned line series, the canonical close and its
// moving average, with a legend and formatted axes, and writes a PNG to
// path. Missing points are skipped, so the SMA line starts once its window
// fills. Like the CSV exporter it writes through a temp file so no partial
// image is left on failure.
func Chart(s *series.Series, symbol string, window int, path string, theme Theme) error {
	closes, err := series.Close(s)
	if err != nil {
		return err
	}
	sma, ok := s.Column(series.SMAColumn(window))
	if !ok {
		return fmt.Errorf("series has no %s column", series.SMAColumn(window))
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - Price & SMA", symbol)
	p.BackgroundColor = theme.Background
	p.Title.TextStyle.Color = theme.Label
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Price (USD)"
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Color = theme.Label
		ax.LineStyle.Color = theme.Frame
		ax.Tick.LineStyle.Color = theme.Frame
		ax.Tick.Label.Color = theme.Tick
	}
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Y.Tick.Marker = dollarTicks{}

	grid := plotter.NewGrid()
	grid.Vertical.Color = theme.Grid
	grid.Horizontal.Color = theme.Grid
	p.Add(grid)

	priceLine, err := plotter.NewLine(points(s, closes))
	if err != nil {
		return fmt.Errorf("price line: %w", err)
	}
	priceLine.LineStyle.Width = vg.Points(1.5)
	priceLine.LineStyle.Color = theme.Price

	smaLine, err := plotter.NewLine(points(s, sma))
	if err != nil {
		return fmt.Errorf("sma line: %w", err)
	}
	smaLine.LineStyle.Width = vg.Points(1.25)
	smaLine.LineStyle.Color = theme.SMA

	p.Add(priceLine, smaLine)
	p.Legend.Add("Price", priceLine)
	p.Legend.Add(fmt.Sprintf("SMA %d", window), smaLine)
	p.Legend.Top = true
	p.Legend.TextStyle.Color = theme.Label

	return savePNG(p, path)
}

// points converts one column into plot coordinates, dropping missing
// entries. X is seconds since the epoch, matching plot.TimeTicks.
func points(s *series.Series, values []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if series.IsMissing(v) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(s.Date(i).Unix()), Y: v})
	}
	return xys
}

// dollarTicks formats the default y ticks as dollar amounts.
type dollarTicks struct{}

func (dollarTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label == "" {
			continue
		}
		ticks[i].Label = "$" + humanize.CommafWithDigits(t.Value, 2)
	}
	return ticks
}

func savePNG(p *plot.Plot, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	wt, err := p.WriterTo(10*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := wt.WriteTo(tmp); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
