package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/osuushi/skeletonize"
)

// Demo of skeleton construction. Input on stdin should be newline separated
// points in the form "x y", one polygon, wound counterclockwise. Blank lines
// are ignored.

var (
	draw  = kingpin.Flag("draw", "Render the result to a PNG and cat it to the terminal").Bool()
	scale = kingpin.Flag("scale", "Pixels per input unit when drawing").Default("40").Float64()
	trace = kingpin.Flag("trace", "Print the diagnostic trace").Bool()
)

func main() {
	kingpin.Parse()
	points := readPoints(os.Stdin)
	skeleton, err := skeletonize.Build(points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skeletonize: %v\n", err)
		os.Exit(1)
	}

	segments := skeleton.SkeletonSegments()
	fmt.Printf("Read %d points, produced %d skeleton segments\n", len(points), len(segments))
	for _, segment := range segments {
		fmt.Printf("  %v -> %v\n", segment.Start, segment.End)
	}

	if *trace {
		for _, line := range skeleton.DebugTrace() {
			fmt.Println(line)
		}
	}
	if *draw {
		skeleton.DbgDraw(*scale)
	}
}

func readPoints(in *os.File) []skeletonize.Vector {
	points := []skeletonize.Vector{}
	// Scan lines
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		points = append(points, parsePoint(line))
	}
	return points
}

func parsePoint(line string) skeletonize.Vector {
	parts := strings.Fields(line)
	x, _ := strconv.ParseFloat(parts[0], 64)
	y, _ := strconv.ParseFloat(parts[1], 64)
	return skeletonize.Vector{X: x, Y: y}
}
