package trip

import (
	"strings"

	"github.com/Sebo-the-tramp/travelsync/internal/airports"
	"github.com/Sebo-the-tramp/travelsync/internal/meetingpoint"
	triptypes "github.com/Sebo-the-tramp/travelsync/internal/trip"
)

// mapGrid plots the group on an equirectangular grid: member airports by
// code, the geographic mean, and the suggested meeting airport. The view is
// centered and scaled from the meeting point result, so a group with fewer
// than two locatable members gets the whole-world view.
type mapGrid struct {
	width  int
	height int
	cells  [][]rune
	marks  map[[2]int]rune // plotted cell -> glyph kind
}

const (
	markAirport = 'a'
	markMean    = 'm'
	markMeeting = 'x'
)

func newMapGrid(width, height int) *mapGrid {
	cells := make([][]rune, height)
	for y := range cells {
		row := make([]rune, width)
		for x := range row {
			row[x] = '·'
		}
		cells[y] = row
	}
	return &mapGrid{width: width, height: height, cells: cells, marks: map[[2]int]rune{}}
}

// span returns the degrees of longitude visible at a zoom level. The paired
// latitude span is half of it, matching the 2:1 aspect of the projection.
func span(zoom int) float64 {
	if zoom <= 0 {
		zoom = 1
	}
	return 720 / float64(zoom)
}

func renderMap(width, height int, result meetingpoint.Result, members []triptypes.Member) string {
	if width < 8 || height < 4 {
		return ""
	}
	grid := newMapGrid(width, height)

	spanLng := span(result.Zoom)
	spanLat := spanLng / 2

	project := func(lat, lng float64) (int, int, bool) {
		x := int((lng - result.Center.Lng + spanLng/2) / spanLng * float64(width))
		y := int((result.Center.Lat + spanLat/2 - lat) / spanLat * float64(height))
		if x < 0 || x >= width || y < 0 || y >= height {
			return 0, 0, false
		}
		return x, y, true
	}

	// Member airports first, then the mean and the meeting airport on top.
	for _, member := range members {
		airport, ok := airports.Resolve(member.HomeAirport)
		if !ok {
			continue
		}
		if x, y, ok := project(airport.Lat, airport.Lng); ok {
			grid.plot(x, y, airport.Code, markAirport)
		}
	}
	if result.Mean != nil {
		if x, y, ok := project(result.Mean.Lat, result.Mean.Lng); ok {
			grid.plot(x, y, "✕", markMean)
		}
	}
	if result.Airport != nil {
		if x, y, ok := project(result.Airport.Lat, result.Airport.Lng); ok {
			grid.plot(x, y, result.Airport.Code, markMeeting)
		}
	}

	return grid.render()
}

// plot writes a label starting at (x, y), clipped to the row.
func (g *mapGrid) plot(x, y int, label string, kind rune) {
	for i, r := range []rune(label) {
		cx := x + i
		if cx >= g.width {
			break
		}
		g.cells[y][cx] = r
		g.marks[[2]int{cx, y}] = kind
	}
}

func (g *mapGrid) render() string {
	var b strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			b.WriteString("\n")
		}
		for x, r := range row {
			s := string(r)
			switch g.marks[[2]int{x, y}] {
			case markMeeting:
				b.WriteString(mapMeetingStyle.Render(s))
			case markMean:
				b.WriteString(mapMeanStyle.Render(s))
			case markAirport:
				b.WriteString(mapAirportStyle.Render(s))
			default:
				b.WriteString(mapWaterStyle.Render(s))
			}
		}
	}
	return b.String()
}
