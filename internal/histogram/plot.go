package histogram

import (
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}

func plotHistogram(column string, vals []float64, format string, opt Options) (io.WriterTo, error) {
	p := plot.New()
	p.Title.Text = Title(column)
	p.X.Label.Text = column
	p.Y.Label.Text = "Frequency"
	p.Add(plotter.NewGrid())

	h, err := plotter.NewHist(plotter.Values(vals), opt.Bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = skyBlue
	h.LineStyle.Color = color.Black
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)

	return p.WriterTo(vg.Length(opt.Width)*vg.Inch, vg.Length(opt.Height)*vg.Inch, format)
}
