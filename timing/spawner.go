package timing

// WaveSpawner partitions a list of wave callbacks into fixed-interval
// slots, optionally looping the whole sequence.
type WaveSpawner struct {
	// WaveDelayFrames is the interval between consecutive waves.
	WaveDelayFrames int
	// LoopCount repeats the full sequence this many times; LoopForever
	// loops indefinitely, and values below one run the sequence once.
	LoopCount int

	waves []func(wave, loop int)
	index int
	loop  int
	timer int
	done  bool
}

func NewWaveSpawner(waveDelayFrames, loopCount int, waves ...func(wave, loop int)) *WaveSpawner {
	return &WaveSpawner{
		WaveDelayFrames: waveDelayFrames,
		LoopCount:       loopCount,
		waves:           waves,
	}
}

// Update fires the next wave each time the delay slot elapses. The first
// wave fires after one full delay.
func (s *WaveSpawner) Update() {
	if s == nil || s.done || len(s.waves) == 0 {
		return
	}
	s.timer++
	if s.timer < s.WaveDelayFrames {
		return
	}
	s.timer = 0

	if fn := s.waves[s.index]; fn != nil {
		fn(s.index, s.loop)
	}
	s.index++
	if s.index < len(s.waves) {
		return
	}
	s.index = 0
	s.loop++
	if s.LoopCount != LoopForever && s.loop >= s.maxLoops() {
		s.done = true
	}
}

// Complete reports whether all waves of all loops have fired.
func (s *WaveSpawner) Complete() bool {
	return s == nil || s.done || len(s.waves) == 0
}

func (s *WaveSpawner) maxLoops() int {
	if s.LoopCount < 1 {
		return 1
	}
	return s.LoopCount
}
