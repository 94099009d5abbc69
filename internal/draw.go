package internal

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
)

// This is for debugging purposes only

const dbgDrawPadding = 20

// DrawPNG renders the computed skeleton to an image: every wavefront
// snapshot as an outline, the input bisector rays, and the finished segments
// on top.
func (s *Skeleton) DrawPNG(scale float64, path string) error {
	if len(s.snapshots) == 0 {
		return nil
	}
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, p := range s.snapshots[0].Poly.Positions() {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + dbgDrawPadding*2
	height := int(scale*(maxY-minY)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-minX, -minY)

	// Wavefront outlines, oldest to newest
	c.SetLineWidth(1)
	c.SetRGB(0, 0.5, 0)
	for _, snap := range s.snapshots {
		positions := snap.Poly.Positions()
		c.MoveTo(positions[0].X, positions[0].Y)
		for _, p := range positions[1:] {
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
		c.Stroke()
	}

	// Bisector rays
	c.SetRGB(0, 0.7, 0.7)
	for _, ray := range s.rays {
		c.DrawLine(ray.Start.X, ray.Start.Y, ray.End.X, ray.End.Y)
		c.Stroke()
	}

	// Finished skeleton
	c.SetLineWidth(2)
	c.SetRGB(1, 0.2, 0.2)
	for _, segment := range s.segments {
		c.DrawLine(segment.Start.X, segment.Start.Y, segment.End.X, segment.End.Y)
		c.Stroke()
	}

	return c.SavePNG(path)
}

// DbgDraw dumps the skeleton to the terminal for inline inspection.
func (s *Skeleton) DbgDraw(scale float64) {
	path := "/tmp/skeleton.png"
	if err := s.DrawPNG(scale, path); err != nil {
		return
	}
	imgcat.CatFile(path, os.Stdout)
}
