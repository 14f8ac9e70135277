package timing

// Trigger pairs a predicate with an action. Once-triggers fire a single
// time; repeat-triggers fire on every tick the predicate holds.
type Trigger[T any] struct {
	Name      string
	Predicate func(ctx T) bool
	Action    func(ctx T)
	// Once limits the trigger to a single firing.
	Once bool

	fired bool
}

// TriggerSystem evaluates its triggers against a context object each
// tick.
type TriggerSystem[T any] struct {
	triggers []*Trigger[T]
}

func NewTriggerSystem[T any]() *TriggerSystem[T] {
	return &TriggerSystem[T]{}
}

// Add registers a trigger.
func (s *TriggerSystem[T]) Add(t *Trigger[T]) {
	if s == nil || t == nil || t.Predicate == nil {
		return
	}
	s.triggers = append(s.triggers, t)
}

// Update evaluates every live trigger against ctx, firing bound actions
// on predicate-true. Spent once-triggers are pruned.
func (s *TriggerSystem[T]) Update(ctx T) {
	if s == nil || len(s.triggers) == 0 {
		return
	}
	writeIdx := 0
	for _, t := range s.triggers {
		if t.Once && t.fired {
			continue
		}
		if t.Predicate(ctx) {
			t.fired = true
			if t.Action != nil {
				t.Action(ctx)
			}
			if t.Once {
				continue
			}
		}
		s.triggers[writeIdx] = t
		writeIdx++
	}
	s.triggers = s.triggers[:writeIdx]
}

// Len returns the number of live triggers.
func (s *TriggerSystem[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.triggers)
}
