package timing

// framesPerMinute is the tick budget of one minute at the fixed 60fps
// simulation rate.
const framesPerMinute = 3600.0

// RhythmTimer converts a BPM and beats-per-measure into frame-accurate
// beat and measure callbacks. At 120bpm a beat lands every 30 frames:
// the first beat fires at the end of the first 30-tick window, and
// exactly one beat fires per window after that. Fractional beat lengths
// accumulate so long runs never drift.
type RhythmTimer struct {
	BPM             float64
	BeatsPerMeasure int

	// OnBeat fires on every beat with the beat index within the measure.
	OnBeat func(beat int)
	// OnMeasure fires on beat zero of each measure with the measure index.
	OnMeasure func(measure int)

	frame    int
	nextBeat float64
	beat     int
	measure  int
	started  bool
}

func NewRhythmTimer(bpm float64, beatsPerMeasure int) *RhythmTimer {
	if beatsPerMeasure < 1 {
		beatsPerMeasure = 4
	}
	return &RhythmTimer{BPM: bpm, BeatsPerMeasure: beatsPerMeasure, beat: -1}
}

// FramesPerBeat returns the beat length in frames (3600/bpm at 60fps).
func (r *RhythmTimer) FramesPerBeat() float64 {
	if r == nil || r.BPM <= 0 {
		return 0
	}
	return framesPerMinute / r.BPM
}

// Update advances one frame, firing beat/measure callbacks on beat
// boundaries.
func (r *RhythmTimer) Update() {
	if r == nil || r.BPM <= 0 {
		return
	}
	if !r.started {
		r.started = true
		r.nextBeat = r.FramesPerBeat()
	}
	r.frame++
	for float64(r.frame) >= r.nextBeat {
		r.beat++
		if r.beat >= r.BeatsPerMeasure {
			r.beat = 0
			r.measure++
		}
		if r.OnBeat != nil {
			r.OnBeat(r.beat)
		}
		if r.beat == 0 && r.OnMeasure != nil {
			r.OnMeasure(r.measure)
		}
		r.nextBeat += r.FramesPerBeat()
	}
}

// Beat returns the beat index within the measure of the most recent beat.
func (r *RhythmTimer) Beat() int {
	if r == nil || r.beat < 0 {
		return 0
	}
	return r.beat
}

// Measure returns the current measure index.
func (r *RhythmTimer) Measure() int {
	if r == nil {
		return 0
	}
	return r.measure
}
