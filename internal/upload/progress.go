package upload

// Tracker blends video and thumbnail bytes into one percentage: video
// bytes fill up to 90 %, the thumbnail the remaining 10 %. Video-only
// progress can never report past 90 and the total cannot pass 100 until
// the thumbnail's own progress completes.
type Tracker struct {
	totalSize  int64 // video bytes + thumbnail bytes
	thumbSize  int64
	videoSent  int64
	onProgress func(percent int)
	last       int
}

// NewTracker creates a tracker over the combined byte total. onProgress
// may be nil; it fires on every recomputation.
func NewTracker(videoSize, thumbSize int64, onProgress func(percent int)) *Tracker {
	return &Tracker{
		totalSize:  videoSize + thumbSize,
		thumbSize:  thumbSize,
		onProgress: onProgress,
		last:       -1,
	}
}

// VideoTick records cumulative video bytes sent across all parts.
func (t *Tracker) VideoTick(cumulative int64) {
	t.videoSent = cumulative
	if t.totalSize == 0 {
		return
	}
	percent := int(float64(t.videoSent) / float64(t.totalSize) * 90)
	if percent > 90 {
		percent = 90
	}
	t.report(percent)
}

// ThumbTick records thumbnail bytes sent so far. The thumbnail owns the
// last 10 points; full thumbnail progress yields exactly 100.
func (t *Tracker) ThumbTick(loaded int64) {
	if t.thumbSize == 0 {
		t.report(100)
		return
	}
	percent := 90 + int(float64(loaded)/float64(t.thumbSize)*10)
	if percent > 100 {
		percent = 100
	}
	t.report(percent)
}

// Percent returns the last reported value, 0 before any tick.
func (t *Tracker) Percent() int {
	if t.last < 0 {
		return 0
	}
	return t.last
}

func (t *Tracker) report(percent int) {
	if percent == t.last {
		return
	}
	t.last = percent
	if t.onProgress != nil {
		t.onProgress(percent)
	}
}
