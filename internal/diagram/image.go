package diagram

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SpanData holds per-slice values along the blade radius for plotting
type SpanData struct {
	Radius []float64 // m

	Chord    []float64 // m
	TwistDeg []float64

	AxialInduction      []float64
	TangentialInduction []float64

	AxialForce      []float64 // N
	TangentialForce []float64 // N
}

var (
	chordColor      = color.RGBA{R: 0, G: 90, B: 181, A: 255}
	twistColor      = color.RGBA{R: 220, G: 50, B: 32, A: 255}
	axialColor      = color.RGBA{R: 64, G: 83, B: 211, A: 255}
	tangentialColor = color.RGBA{R: 221, G: 179, B: 16, A: 255}
)

// ExportPlanformDiagram plots the chord distribution to an image file
// (format chosen by extension: png, svg, pdf)
func ExportPlanformDiagram(data SpanData, filename string) error {
	p := plot.New()
	p.Title.Text = "Blade Planform"
	p.X.Label.Text = "Distance from rotation axis (m)"
	p.Y.Label.Text = "Chord (m)"
	p.Y.Min = 0

	line, err := newLine(data.Radius, data.Chord, chordColor)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())
	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}

// ExportTwistDiagram plots the twist distribution to an image file
func ExportTwistDiagram(data SpanData, filename string) error {
	p := plot.New()
	p.Title.Text = "Blade Twist"
	p.X.Label.Text = "Distance from rotation axis (m)"
	p.Y.Label.Text = "Twist (degrees)"

	line, err := newLine(data.Radius, data.TwistDeg, twistColor)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())
	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}

// ExportInductionDiagram plots both induction factors to an image file
func ExportInductionDiagram(data SpanData, filename string) error {
	p := plot.New()
	p.Title.Text = "Induction Factors"
	p.X.Label.Text = "Distance from rotation axis (m)"
	p.Y.Min = 0

	axial, err := newLine(data.Radius, data.AxialInduction, axialColor)
	if err != nil {
		return err
	}
	tangential, err := newLine(data.Radius, data.TangentialInduction, tangentialColor)
	if err != nil {
		return err
	}
	p.Add(axial, tangential, plotter.NewGrid())
	p.Legend.Add("Axial", axial)
	p.Legend.Add("Tangential", tangential)
	p.Legend.Top = true
	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}

// ExportForcesDiagram plots the slice force distributions to an image file
func ExportForcesDiagram(data SpanData, filename string) error {
	p := plot.New()
	p.Title.Text = "Slice Forces"
	p.X.Label.Text = "Distance from rotation axis (m)"
	p.Y.Label.Text = "Force (N)"

	axial, err := newLine(data.Radius, data.AxialForce, axialColor)
	if err != nil {
		return err
	}
	tangential, err := newLine(data.Radius, data.TangentialForce, tangentialColor)
	if err != nil {
		return err
	}
	p.Add(axial, tangential, plotter.NewGrid())
	p.Legend.Add("Axial (thrust)", axial)
	p.Legend.Add("Tangential (torque)", tangential)
	p.Legend.Top = true
	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}

func newLine(xs, ys []float64, c color.Color) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = c
	return line, nil
}
