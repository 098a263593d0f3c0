package text

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	labelColorHashSalt uint32 = 6969420
	// NOTE: changing these dimensions uncovers some awkward indexing issues in the color
	// selection algo for labels. avoid if you can help it
	labelColors = colorGrid(4, 4)
)

// LabelColor picks a color for s from a fixed palette. The same string always
// gets the same color.
func LabelColor(s string) lipgloss.Color {
	colorRangeX := len(labelColors)
	colorRangeY := len(labelColors[0])

	hasher := fnv.New32a()
	hasher.Write([]byte(s))
	hash := hasher.Sum32() + labelColorHashSalt
	n := colorRangeX * colorRangeY
	idx := hash % uint32(n)
	x := int(idx) / colorRangeX
	y := int(idx) - (x * colorRangeY)

	return lipgloss.Color(labelColors[x][y])
}

// ColoredLabel renders s in its LabelColor.
func ColoredLabel(s string) string {
	return lipgloss.NewStyle().Foreground(LabelColor(s)).Render(s)
}

func colorGrid(xSteps, ySteps int) [][]string {
	x0y0, _ := colorful.Hex("#F25D94")
	x1y0, _ := colorful.Hex("#EDFF82")
	x0y1, _ := colorful.Hex("#643AFF")
	x1y1, _ := colorful.Hex("#14F9D5")

	x0 := make([]colorful.Color, ySteps)
	for i := range x0 {
		x0[i] = x0y0.BlendLuv(x0y1, float64(i)/float64(ySteps))
	}

	x1 := make([]colorful.Color, ySteps)
	for i := range x1 {
		x1[i] = x1y0.BlendLuv(x1y1, float64(i)/float64(ySteps))
	}

	grid := make([][]string, ySteps)
	for x := 0; x < ySteps; x++ {
		y0 := x0[x]
		grid[x] = make([]string, xSteps)
		for y := 0; y < xSteps; y++ {
			grid[x][y] = y0.BlendLuv(x1[x], float64(y)/float64(xSteps)).Hex()
		}
	}

	return grid
}
