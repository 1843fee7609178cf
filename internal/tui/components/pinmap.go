package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"github.com/placefind/placefind/internal/tui/styles"
)

// PinMap draws result positions on a character grid. It is a rough sketch,
// not a map: just enough to see how results sit relative to each other and
// to the configured origin.
type PinMap struct {
	width  int
	height int
	pins   []orb.Point
	origin *orb.Point
}

func NewPinMap(width, height int) PinMap {
	return PinMap{width: width, height: height}
}

func (p *PinMap) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *PinMap) SetPins(pins []orb.Point) {
	p.pins = pins
}

func (p *PinMap) SetOrigin(origin *orb.Point) {
	p.origin = origin
}

// Render plots the pins; selected marks one pin with a distinct glyph, -1
// for none.
func (p PinMap) Render(selected int) string {
	if p.width < 4 || p.height < 2 || len(p.pins) == 0 {
		return styles.InactiveItem.Render("no positions to plot")
	}

	minX, minY, maxX, maxY := p.bounds()
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 0.001
	}
	if spanY == 0 {
		spanY = 0.001
	}
	// Breathing room so edge pins don't sit on the border.
	minX -= spanX * 0.1
	maxX += spanX * 0.1
	minY -= spanY * 0.1
	maxY += spanY * 0.1

	grid := make([][]rune, p.height)
	for y := range grid {
		grid[y] = make([]rune, p.width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	plot := func(pt orb.Point, glyph rune) {
		x := int(float64(p.width-1) * (pt[0] - minX) / (maxX - minX))
		// Latitude grows upward, rows grow downward.
		y := int(float64(p.height-1) * (maxY - pt[1]) / (maxY - minY))
		grid[y][x] = glyph
	}

	if p.origin != nil {
		plot(*p.origin, '◎')
	}
	for i, pin := range p.pins {
		if i == selected {
			continue
		}
		plot(pin, '•')
	}
	if selected >= 0 && selected < len(p.pins) {
		plot(p.pins[selected], '◉')
	}

	pinStyle := lipgloss.NewStyle().Foreground(styles.Secondary)
	selStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	originStyle := lipgloss.NewStyle().Foreground(styles.Warning)

	var b strings.Builder
	for y, row := range grid {
		for _, r := range row {
			switch r {
			case '•':
				b.WriteString(pinStyle.Render(string(r)))
			case '◉':
				b.WriteString(selStyle.Render(string(r)))
			case '◎':
				b.WriteString(originStyle.Render(string(r)))
			default:
				b.WriteRune(r)
			}
		}
		if y < len(grid)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (p PinMap) bounds() (minX, minY, maxX, maxY float64) {
	pts := p.pins
	if p.origin != nil {
		pts = append(append([]orb.Point{}, pts...), *p.origin)
	}
	minX, minY = pts[0][0], pts[0][1]
	maxX, maxY = minX, minY
	for _, pt := range pts[1:] {
		minX = min(minX, pt[0])
		maxX = max(maxX, pt[0])
		minY = min(minY, pt[1])
		maxY = max(maxY, pt[1])
	}
	return minX, minY, maxX, maxY
}
