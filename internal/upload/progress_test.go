package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerVideoPhaseCapsAt90(t *testing.T) {
	tracker := NewTracker(900, 100, nil)

	tracker.VideoTick(450)
	assert.Equal(t, 40, tracker.Percent()) // 450/1000 * 90

	tracker.VideoTick(900)
	assert.Equal(t, 81, tracker.Percent())

	// Even over-reported video bytes never pass 90.
	tracker.VideoTick(2000)
	assert.Equal(t, 90, tracker.Percent())
}

func TestTrackerThumbPhaseCompletesTo100(t *testing.T) {
	tracker := NewTracker(900, 100, nil)
	tracker.VideoTick(900)

	tracker.ThumbTick(50)
	assert.Equal(t, 95, tracker.Percent())

	tracker.ThumbTick(100)
	assert.Equal(t, 100, tracker.Percent())
}

func TestTrackerZeroThumbnail(t *testing.T) {
	tracker := NewTracker(1000, 0, nil)
	tracker.ThumbTick(0)
	assert.Equal(t, 100, tracker.Percent())
}

func TestTrackerReportsOnlyChanges(t *testing.T) {
	var calls []int
	tracker := NewTracker(1000, 0, func(p int) { calls = append(calls, p) })

	tracker.VideoTick(100)
	tracker.VideoTick(100)
	tracker.VideoTick(100)
	tracker.VideoTick(200)

	assert.Equal(t, []int{9, 18}, calls)
}
