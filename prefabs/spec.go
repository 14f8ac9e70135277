// Package prefabs holds the declarative encounter data: embedded yaml
// specs describing enemies and their attack patterns, plus the tengo
// movement scripts waves can reference. Specs are validated eagerly and
// in full before anything is constructed.
package prefabs

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/battlebox/attack"
)

// EncounterSpec describes one enemy fight end to end.
type EncounterSpec struct {
	Name     string    `yaml:"name"`
	HP       float64   `yaml:"hp"`
	Attack   float64   `yaml:"attack"`
	Defense  float64   `yaml:"defense"`
	Dialogue []string   `yaml:"dialogue"`
	Acts     []ActSpec  `yaml:"acts"`
	Items    []ItemSpec `yaml:"items"`
	// Soul selects the movement mode for the fight: normal, shield,
	// gravity, ranged, or rail. Empty means normal.
	Soul     string        `yaml:"soul"`
	Patterns []PatternSpec `yaml:"patterns"`
}

type ActSpec struct {
	Name      string  `yaml:"name"`
	Response  string  `yaml:"response"`
	MercyGain float64 `yaml:"mercy_gain"`
}

// ItemSpec is one consumable the player carries into the fight.
type ItemSpec struct {
	Name string  `yaml:"name"`
	Heal float64 `yaml:"heal"`
}

// PatternSpec is one enemy-turn barrage: either a timed wave list, or a
// phase sequence referencing other patterns in the same encounter.
type PatternSpec struct {
	Name     string      `yaml:"name"`
	Duration int         `yaml:"duration"`
	Waves    []WaveSpec  `yaml:"waves"`
	Phases   []PhaseSpec `yaml:"phases"`
}

// PhaseSpec plays a named wave pattern for Duration frames, then rests
// for Gap frames before the next phase begins.
type PhaseSpec struct {
	Pattern  string `yaml:"pattern"`
	Duration int    `yaml:"duration"`
	Gap      int    `yaml:"gap"`
}

// WaveSpec is one timed spawn instruction. The numeric fields are a
// superset; each wave type reads the ones it needs.
type WaveSpec struct {
	Time  int    `yaml:"time"`
	Type  string `yaml:"type"`
	Count int    `yaml:"count"`
	Side  string `yaml:"side"`

	Speed  float64 `yaml:"speed"`
	Damage float64 `yaml:"damage"`

	// Homing.
	TurnRate    float64 `yaml:"turn_rate"`
	HomingDelay int     `yaml:"homing_delay"`

	// Bouncing.
	Bounces    int     `yaml:"bounces"`
	EnergyLoss float64 `yaml:"energy_loss"`

	// Exploding.
	Fuse      int     `yaml:"fuse"`
	Fragments int     `yaml:"fragments"`
	Scatter   string  `yaml:"scatter"`
	Chain     float64 `yaml:"chain"`

	// Arc.
	Gravity float64 `yaml:"gravity"`

	// Wave.
	Oscillation string  `yaml:"oscillation"`
	Amplitude   float64 `yaml:"amplitude"`
	Frequency   float64 `yaml:"frequency"`

	// Beam.
	AngularVel float64 `yaml:"angular_vel"`
	Length     float64 `yaml:"length"`
	Telegraph  int     `yaml:"telegraph"`
	ActiveFor  int     `yaml:"active_for"`
	Fade       int     `yaml:"fade"`

	// Wall.
	Thickness float64   `yaml:"thickness"`
	Gaps      []GapSpec `yaml:"gaps"`

	// Blaster.
	Appear int `yaml:"appear"`
	Charge int `yaml:"charge"`
	Fire   int `yaml:"fire"`

	// Script names a tengo movement override under scripts/.
	Script string `yaml:"script"`

	// Modifiers are timed transforms attached to every spawned object.
	Modifiers []ModifierSpec `yaml:"modifiers"`
}

// ModifierSpec attaches one timed transform to a wave's objects. Kind
// selects the transform: scale, alpha, speed, damage, rotation (From is
// radians per frame), mirror_x, mirror_y.
type ModifierSpec struct {
	Kind     string  `yaml:"kind"`
	From     float64 `yaml:"from"`
	To       float64 `yaml:"to"`
	Duration int     `yaml:"duration"`
	Easing   string  `yaml:"easing"`
	// Permanent keeps a speed change after the duration elapses.
	Permanent bool `yaml:"permanent"`
	// Restore returns damage to its original value afterwards.
	Restore bool `yaml:"restore"`
}

type GapSpec struct {
	Pos  float64 `yaml:"pos"`
	Size float64 `yaml:"size"`
}

// LoadEncounterSpec loads and validates enemies/<name>.yaml.
func LoadEncounterSpec(name string) (*EncounterSpec, error) {
	data, err := Load(fmt.Sprintf("enemies/%s.yaml", name))
	if err != nil {
		return nil, fmt.Errorf("prefabs: load encounter %s: %w", name, err)
	}
	var spec EncounterSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal encounter %s: %w", name, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// soulModes are the names Validate accepts in the soul field.
var soulModes = map[string]bool{
	"": true, "normal": true, "shield": true, "gravity": true, "ranged": true, "rail": true,
}

// waveTypes are the wave type tags Build understands. Validate does not
// reject unknown types; Build warns and skips them so one bad wave never
// sinks the whole pattern.
var waveTypes = map[string]bool{
	"projectiles": true, "blue": true, "orange": true, "homing": true,
	"bouncing": true, "exploding": true, "arc": true, "wave": true,
	"beam": true, "wall": true, "blaster": true, "ring": true,
}

// modifierKinds are the transform tags buildModifier understands.
// Unknown kinds warn and skip at build time, like wave types.
var modifierKinds = map[string]bool{
	"scale": true, "alpha": true, "speed": true, "damage": true,
	"rotation": true, "mirror_x": true, "mirror_y": true,
}

// Validate checks every field of the spec and returns a single error
// listing ALL violations, so data authors fix a file in one pass. A spec
// that fails validation must never be partially constructed.
func (s *EncounterSpec) Validate() error {
	var violations []string
	bad := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(s.Name) == "" {
		bad("name is empty")
	}
	if s.HP <= 0 {
		bad("hp must be positive, got %g", s.HP)
	}
	if s.Attack < 0 {
		bad("attack must not be negative, got %g", s.Attack)
	}
	if s.Defense < 0 {
		bad("defense must not be negative, got %g", s.Defense)
	}
	if !soulModes[s.Soul] {
		bad("unknown soul mode %q", s.Soul)
	}
	if len(s.Patterns) == 0 {
		bad("at least one pattern is required")
	}
	for i, it := range s.Items {
		if strings.TrimSpace(it.Name) == "" {
			bad("items[%d]: name is empty", i)
		}
		if it.Heal <= 0 {
			bad("items[%d]: heal must be positive, got %g", i, it.Heal)
		}
	}

	// phases may only reference plain wave patterns, so collect those first
	waveNames := map[string]bool{}
	for _, p := range s.Patterns {
		if len(p.Phases) == 0 {
			waveNames[p.Name] = true
		}
	}

	for i, p := range s.Patterns {
		where := fmt.Sprintf("patterns[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			bad("%s: name is empty", where)
		}
		if len(p.Phases) > 0 {
			if len(p.Waves) > 0 {
				bad("%s: phases and waves are mutually exclusive", where)
			}
			for k, ph := range p.Phases {
				at := fmt.Sprintf("%s.phases[%d]", where, k)
				if strings.TrimSpace(ph.Pattern) == "" {
					bad("%s: pattern is empty", at)
				} else if !waveNames[ph.Pattern] {
					bad("%s: references unknown wave pattern %q", at, ph.Pattern)
				}
				if ph.Duration <= 0 {
					bad("%s: duration must be positive, got %d", at, ph.Duration)
				}
				if ph.Gap < 0 {
					bad("%s: gap must not be negative, got %d", at, ph.Gap)
				}
			}
			continue
		}
		if p.Duration <= 0 {
			bad("%s: duration must be positive, got %d", where, p.Duration)
		}
		if len(p.Waves) == 0 {
			bad("%s: at least one wave is required", where)
		}
		for j, w := range p.Waves {
			at := fmt.Sprintf("%s.waves[%d]", where, j)
			if w.Time < 0 {
				bad("%s: time must not be negative, got %d", at, w.Time)
			}
			if strings.TrimSpace(w.Type) == "" {
				bad("%s: type is empty", at)
			}
			if w.Count < 0 {
				bad("%s: count must not be negative, got %d", at, w.Count)
			}
			if w.Side != "" {
				if _, ok := attack.SideByName(w.Side); !ok {
					bad("%s: unknown side %q", at, w.Side)
				}
			}
			if w.Speed < 0 {
				bad("%s: speed must not be negative, got %g", at, w.Speed)
			}
			if w.Damage < 0 {
				bad("%s: damage must not be negative, got %g", at, w.Damage)
			}
			for k, g := range w.Gaps {
				if g.Pos < 0 || g.Pos > 1 {
					bad("%s.gaps[%d]: pos must be in [0, 1], got %g", at, k, g.Pos)
				}
				if g.Size <= 0 {
					bad("%s.gaps[%d]: size must be positive, got %g", at, k, g.Size)
				}
			}
			for k, m := range w.Modifiers {
				if strings.TrimSpace(m.Kind) == "" {
					bad("%s.modifiers[%d]: kind is empty", at, k)
				}
				if m.Duration < 0 {
					bad("%s.modifiers[%d]: duration must not be negative, got %d", at, k, m.Duration)
				}
			}
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return fmt.Errorf("prefabs: invalid encounter %q:\n  - %s", s.Name, strings.Join(violations, "\n  - "))
}
