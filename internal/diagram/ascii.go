package diagram

import (
	"fmt"
	"strings"
)

// DrawASCIIPlanform creates an ASCII top view of the blade: chord
// distribution along the radius, centered on the pitch axis
func DrawASCIIPlanform(data SpanData) string {
	var sb strings.Builder

	// Scale factors for ASCII drawing
	widthChars := 64
	halfHeight := 7

	if len(data.Radius) < 2 {
		return "  (not enough slices to draw)\n"
	}

	rootR := data.Radius[0]
	tipR := data.Radius[len(data.Radius)-1]
	maxChord := 0.0
	for _, c := range data.Chord {
		if c > maxChord {
			maxChord = c
		}
	}
	if maxChord <= 0 || tipR <= rootR {
		return "  (degenerate planform)\n"
	}

	// Chord half-thickness in rows for each drawn column, sampled from
	// the nearest slice
	cols := make([]int, widthChars+1)
	for i := 0; i <= widthChars; i++ {
		r := rootR + (tipR-rootR)*float64(i)/float64(widthChars)
		chord := sampleAt(data.Radius, data.Chord, r)
		cols[i] = int(chord / maxChord * float64(halfHeight))
	}

	sb.WriteString("\n")
	sb.WriteString("  BLADE PLANFORM (root → tip)\n")
	sb.WriteString("  ───────────────────────────\n")

	for row := halfHeight; row >= -halfHeight; row-- {
		sb.WriteString("  ")
		for i := 0; i <= widthChars; i++ {
			switch {
			case row == 0 && cols[i] == 0:
				sb.WriteString("─")
			case row == 0:
				sb.WriteString("█")
			case abs(row) <= cols[i]:
				sb.WriteString("░")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	left := fmt.Sprintf("r=%.2fm", rootR)
	right := fmt.Sprintf("r=%.2fm", tipR)
	pad := widthChars + 1 - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	sb.WriteString("  " + left + strings.Repeat(" ", pad) + right + "\n")
	sb.WriteString(fmt.Sprintf("  max chord: %.3fm\n", maxChord))

	return sb.String()
}

// sampleAt linearly interpolates ys over xs at x, clamping at the ends
func sampleAt(xs, ys []float64, x float64) float64 {
	if x <= xs[0] {
		return ys[0]
	}
	for i := 1; i < len(xs); i++ {
		if x <= xs[i] {
			f := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1]*(1-f) + ys[i]*f
		}
	}
	return ys[len(ys)-1]
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
