package histogram

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const chartDPI = 96

func chartHistogram(column string, vals []float64, format string, opt Options) (io.WriterTo, error) {
	var rp chart.RendererProvider
	switch format {
	case "png":
		rp = chart.PNG
	case "svg":
		rp = chart.SVG
	default:
		return nil, fmt.Errorf("unsupported format %q for the chart backend (use png|svg)", format)
	}

	bins := Bins(vals, opt.Bins)
	maxCount := 0.0
	bars := make([]chart.Value, len(bins))
	for i, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
		bars[i] = chart.Value{
			Value: b.Count,
			Label: strconv.FormatFloat(b.Min, 'g', 4, 64),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("87CEEB"),
				StrokeColor: drawing.ColorBlack,
				StrokeWidth: 1,
			},
		}
	}

	width := int(opt.Width * chartDPI)
	height := int(opt.Height * chartDPI)
	graph := chart.BarChart{
		Title:      Title(column),
		Width:      width,
		Height:     height,
		DPI:        chartDPI,
		BarWidth:   width / (len(bars) + 2),
		BarSpacing: 2,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 50}},
		XAxis:      chart.Style{FontSize: 7},
		YAxis: chart.YAxis{
			Name:  "Frequency",
			Range: &chart.ContinuousRange{Min: 0, Max: maxCount},
		},
		Bars:     bars,
		Elements: []chart.Renderable{xAxisName(column, height)},
	}

	var buf bytes.Buffer
	if err := graph.Render(rp, &buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

// xAxisName draws name centered under the bar labels. BarChart has no
// named X axis of its own.
func xAxisName(name string, height int) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		style := chart.Style{FontSize: 10, FontColor: drawing.ColorBlack}.InheritFrom(defaults)
		style.WriteTextOptionsToRenderer(r)
		tb := r.MeasureText(name)
		x, _ := canvas.Center()
		r.Text(name, x-tb.Width()/2, height-8)
	}
}
