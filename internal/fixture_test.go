package internal

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures and outputs point lists. This is not a
// full (or even correct) svg parser. It parses the SVG and then finds
// whatever the first polygon is, then converts that into a CCW point list.
// If anything goes wrong, it panics.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []Vector {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) != 1 {
		log.Fatalf("Expected exactly one polygon in fixture %q, found %d", name, len(polygons))
	}

	pointStrings := strings.Split(polygons[0].Attributes["points"], " ")
	points := make([]Vector, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		if pointString == "" {
			continue
		}

		coords := strings.Split(pointString, ",")
		if len(coords) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", coords[0], err)
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", coords[1], err)
		}
		points = append(points, Vector{X: x, Y: y})
	}

	// Ensure that the polygon winds counterclockwise
	if signedAreaOf(points) < 0 {
		points = reversePoints(points)
	}
	return points
}

func signedAreaOf(points []Vector) float64 {
	var sum float64
	for i, p := range points {
		sum += p.Cross(points[CircularIndex(i+1, len(points))])
	}
	return sum / 2
}

func reversePoints(points []Vector) []Vector {
	reversed := make([]Vector, 0, len(points))
	for i := len(points) - 1; i >= 0; i-- {
		reversed = append(reversed, points[i])
	}
	return reversed
}

// Some ad hoc code specified fixtures

// The 8x5 rectangle whose skeleton is a single horizontal ridge.
func rectanglePoints() []Vector {
	return []Vector{{0, 0}, {8, 0}, {8, 5}, {0, 5}}
}

// An irregular convex pentagon; collapses through several distinct-time edge
// events.
func pentagonPoints() []Vector {
	return []Vector{{0, 0}, {6, 0}, {8, 3}, {3, 6}, {-2, 3}}
}

// An L with one reflex vertex at (1, 1). Six vertices, so its reflex vertex
// has non-adjacent edges to split against.
func lShapePoints() []Vector {
	return []Vector{{0, 0}, {4, 0}, {4, 1}, {1, 1}, {1, 4}, {0, 4}}
}

// Two segments crossing: not a simple polygon.
func bowtiePoints() []Vector {
	return []Vector{{0, 0}, {4, 4}, {4, 0}, {0, 4}}
}
