package attack

// Phase is a stage of the shared attack lifecycle.
type Phase int

const (
	// PhaseWarmup is the telegraph: visible, non-damaging, alpha ramps up.
	PhaseWarmup Phase = iota
	// PhaseActive is the damaging phase at full alpha.
	PhaseActive
	// PhaseCooldown is the fade-out: non-damaging, alpha ramps down.
	PhaseCooldown
	// PhaseComplete is terminal; the owner marks the object inactive.
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseWarmup:
		return "warmup"
	case PhaseActive:
		return "active"
	case PhaseCooldown:
		return "cooldown"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Lifecycle is the telegraph/active/fade-out state machine shared by every
// variant that opts in. Durations are frame counts. An ActiveFrames value
// below zero keeps the active phase open until BeginCooldown is called.
type Lifecycle struct {
	WarmupFrames   int
	ActiveFrames   int
	CooldownFrames int
	// TargetAlpha is the alpha reached at the end of warmup.
	TargetAlpha float64

	phase Phase
	timer int
}

func NewLifecycle(warmup, active, cooldown int) *Lifecycle {
	l := &Lifecycle{
		WarmupFrames:   warmup,
		ActiveFrames:   active,
		CooldownFrames: cooldown,
		TargetAlpha:    1,
	}
	l.skipEmptyPhases()
	return l
}

// Update advances the local timer one frame and moves to the next phase
// when the current phase's duration is reached. Updating a complete
// lifecycle is a no-op.
func (l *Lifecycle) Update() {
	if l == nil || l.phase == PhaseComplete {
		return
	}
	if l.phase == PhaseActive && l.ActiveFrames < 0 {
		return
	}
	l.timer++
	if l.timer >= l.phaseDuration() {
		l.advance()
	}
}

// BeginCooldown forces the transition out of an open-ended active phase.
func (l *Lifecycle) BeginCooldown() {
	if l == nil || l.phase == PhaseComplete || l.phase == PhaseCooldown {
		return
	}
	l.phase = PhaseCooldown
	l.timer = 0
	l.skipEmptyPhases()
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase {
	if l == nil {
		return PhaseComplete
	}
	return l.phase
}

// CanDealDamage is true only while active.
func (l *Lifecycle) CanDealDamage() bool {
	return l != nil && l.phase == PhaseActive
}

// Complete reports whether the lifecycle reached its terminal phase.
func (l *Lifecycle) Complete() bool {
	return l == nil || l.phase == PhaseComplete
}

// Alpha returns the visual opacity for the current phase: ramping 0 to
// TargetAlpha through warmup, TargetAlpha while active, and back to 0
// through cooldown.
func (l *Lifecycle) Alpha() float64 {
	if l == nil {
		return 0
	}
	switch l.phase {
	case PhaseWarmup:
		if l.WarmupFrames <= 0 {
			return l.TargetAlpha
		}
		return l.TargetAlpha * float64(l.timer) / float64(l.WarmupFrames)
	case PhaseActive:
		return l.TargetAlpha
	case PhaseCooldown:
		if l.CooldownFrames <= 0 {
			return 0
		}
		return l.TargetAlpha * (1 - float64(l.timer)/float64(l.CooldownFrames))
	default:
		return 0
	}
}

func (l *Lifecycle) phaseDuration() int {
	switch l.phase {
	case PhaseWarmup:
		return l.WarmupFrames
	case PhaseActive:
		return l.ActiveFrames
	case PhaseCooldown:
		return l.CooldownFrames
	default:
		return 0
	}
}

func (l *Lifecycle) advance() {
	l.timer = 0
	switch l.phase {
	case PhaseWarmup:
		l.phase = PhaseActive
	case PhaseActive:
		l.phase = PhaseCooldown
	case PhaseCooldown:
		l.phase = PhaseComplete
	}
	l.skipEmptyPhases()
}

// skipEmptyPhases moves past phases with a zero duration so a lifecycle
// without a telegraph starts damaging immediately.
func (l *Lifecycle) skipEmptyPhases() {
	for l.phase != PhaseComplete && l.phaseDuration() == 0 && !(l.phase == PhaseActive && l.ActiveFrames < 0) {
		switch l.phase {
		case PhaseWarmup:
			l.phase = PhaseActive
		case PhaseActive:
			l.phase = PhaseCooldown
		case PhaseCooldown:
			l.phase = PhaseComplete
		}
	}
}
