package soul

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/input"
)

// Mode is a swappable movement strategy. A mode's Update owns clamping
// and physics entirely; the Soul stores no movement rules of its own.
type Mode interface {
	Enter(s *Soul)
	Exit(s *Soul)
	Update(s *Soul, in *input.State, arena cp.BB)
	Name() string
}
