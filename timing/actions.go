package timing

// DelayedAction is one step of a sequence: wait DelayFrames, then run.
type DelayedAction struct {
	DelayFrames int
	Action      func()
}

// ActionSequence runs delayed actions one at a time, advancing only when
// the current delay elapses and its action has run.
type ActionSequence struct {
	actions []DelayedAction
	index   int
	timer   int
}

func NewActionSequence(actions ...DelayedAction) *ActionSequence {
	return &ActionSequence{actions: actions}
}

// Update advances the current delay one frame, firing and moving on when
// it elapses. Updating a complete sequence is a no-op.
func (s *ActionSequence) Update() {
	if s == nil || s.Complete() {
		return
	}
	cur := s.actions[s.index]
	s.timer++
	if s.timer < cur.DelayFrames {
		return
	}
	if cur.Action != nil {
		cur.Action()
	}
	s.index++
	s.timer = 0
}

// Complete reports whether every action has fired.
func (s *ActionSequence) Complete() bool {
	return s == nil || s.index >= len(s.actions)
}

// ParallelActions runs all delayed actions concurrently, each on its own
// timer.
type ParallelActions struct {
	actions []DelayedAction
	fired   []bool
	timer   int
}

func NewParallelActions(actions ...DelayedAction) *ParallelActions {
	return &ParallelActions{
		actions: actions,
		fired:   make([]bool, len(actions)),
	}
}

func (p *ParallelActions) Update() {
	if p == nil || p.Complete() {
		return
	}
	p.timer++
	for i, a := range p.actions {
		if p.fired[i] || p.timer < a.DelayFrames {
			continue
		}
		p.fired[i] = true
		if a.Action != nil {
			a.Action()
		}
	}
}

func (p *ParallelActions) Complete() bool {
	if p == nil {
		return true
	}
	for _, f := range p.fired {
		if !f {
			return false
		}
	}
	return true
}

// LoopForever makes a LoopedAction re-fire indefinitely.
const LoopForever = -1

// LoopedAction re-invokes an action at a fixed frame interval for a
// bounded number of iterations, or forever when Iterations is
// LoopForever.
type LoopedAction struct {
	IntervalFrames int
	Iterations     int
	Action         func(iteration int)

	timer int
	count int
}

func NewLoopedAction(intervalFrames, iterations int, action func(iteration int)) *LoopedAction {
	return &LoopedAction{
		IntervalFrames: intervalFrames,
		Iterations:     iterations,
		Action:         action,
	}
}

func (l *LoopedAction) Update() {
	if l == nil || l.Complete() {
		return
	}
	l.timer++
	if l.timer < l.IntervalFrames {
		return
	}
	l.timer = 0
	l.count++
	if l.Action != nil {
		l.Action(l.count)
	}
}

// Complete reports whether the bounded iteration count was reached.
// Indefinite loops never complete.
func (l *LoopedAction) Complete() bool {
	if l == nil {
		return true
	}
	if l.Iterations == LoopForever {
		return false
	}
	return l.count >= l.Iterations
}
