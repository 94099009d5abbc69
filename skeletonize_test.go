package skeletonize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	t.Run("rectangle ridge", func(t *testing.T) {
		skeleton, err := Build([]Vector{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 5}, {X: 0, Y: 5}})
		assert.NoError(t, err)

		segments := skeleton.SkeletonSegments()
		assert.Len(t, segments, 1)
		assert.InDelta(t, 2.5, segments[0].Start.X, 1e-9)
		assert.InDelta(t, 2.5, segments[0].Start.Y, 1e-9)
		assert.InDelta(t, 5.5, segments[0].End.X, 1e-9)
		assert.InDelta(t, 2.5, segments[0].End.Y, 1e-9)
	})

	t.Run("too few points", func(t *testing.T) {
		skeleton, err := Build([]Vector{{X: 0, Y: 0}, {X: 1, Y: 0}})
		assert.Error(t, err)
		assert.Nil(t, skeleton)
	})

	t.Run("self-intersecting input", func(t *testing.T) {
		skeleton, err := Build([]Vector{{X: 0, Y: 0}, {X: 4, Y: 4}, {X: 4, Y: 0}, {X: 0, Y: 4}})
		assert.Error(t, err)
		assert.Nil(t, skeleton)
	})

	t.Run("clockwise input", func(t *testing.T) {
		skeleton, err := Build([]Vector{{X: 0, Y: 5}, {X: 8, Y: 5}, {X: 8, Y: 0}, {X: 0, Y: 0}})
		assert.Error(t, err)
		assert.Nil(t, skeleton)
	})
}

func TestBuildWithBudget(t *testing.T) {
	points := []Vector{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 8, Y: 3}, {X: 3, Y: 6}, {X: -2, Y: 3}}

	t.Run("single event budget commits one wavefront", func(t *testing.T) {
		skeleton, err := BuildWithBudget(points, 1)
		assert.NoError(t, err)
		assert.Len(t, skeleton.WavefrontSnapshots(), 2)
	})

	t.Run("generous budget completes", func(t *testing.T) {
		skeleton, err := BuildWithBudget(points, 1000)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, len(skeleton.WavefrontSnapshots()), 2)
	})
}
