package prefabs

import (
	"strings"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/attack"
	"github.com/milk9111/battlebox/soul"
)

func validSpec() *EncounterSpec {
	return &EncounterSpec{
		Name: "Test", HP: 10,
		Patterns: []PatternSpec{{
			Name: "p", Duration: 100,
			Waves: []WaveSpec{{Type: "projectiles", Count: 4, Side: "top", Speed: 2}},
		}},
	}
}

func TestValidateAcceptsGoodSpec(t *testing.T) {
	if err := validSpec().Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	spec := &EncounterSpec{
		Name: "", HP: 0, Attack: -1, Soul: "submarine",
		Patterns: []PatternSpec{{
			Name: "", Duration: 0,
			Waves: []WaveSpec{{Type: "", Time: -5, Count: -1, Side: "under", Speed: -2,
				Gaps: []GapSpec{{Pos: 1.5, Size: 0}}}},
		}},
	}
	err := spec.Validate()
	if err == nil {
		t.Fatal("invalid spec accepted")
	}
	msg := err.Error()
	for _, want := range []string{
		"name is empty",
		"hp must be positive",
		"attack must not be negative",
		"unknown soul mode",
		"duration must be positive",
		"type is empty",
		"time must not be negative",
		"count must not be negative",
		"unknown side",
		"speed must not be negative",
		"pos must be in [0, 1]",
		"size must be positive",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing violation %q:\n%s", want, msg)
		}
	}
}

func TestValidateRequiresPatternsAndWaves(t *testing.T) {
	spec := &EncounterSpec{Name: "x", HP: 1}
	if err := spec.Validate(); err == nil || !strings.Contains(err.Error(), "at least one pattern") {
		t.Fatalf("err = %v, want missing-pattern violation", err)
	}

	spec.Patterns = []PatternSpec{{Name: "p", Duration: 10}}
	if err := spec.Validate(); err == nil || !strings.Contains(err.Error(), "at least one wave") {
		t.Fatalf("err = %v, want missing-wave violation", err)
	}
}

func TestLoadEmbeddedEncounters(t *testing.T) {
	for _, name := range []string{"dummy", "gravekeeper"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEncounterSpec(name)
			if err != nil {
				t.Fatalf("load %s: %v", name, err)
			}
			if spec.HP <= 0 || len(spec.Patterns) == 0 {
				t.Fatalf("spec %s looks hollow: %+v", name, spec)
			}
		})
	}
}

func TestLoadEncounterSpecUnknownName(t *testing.T) {
	if _, err := LoadEncounterSpec("no_such_enemy"); err == nil {
		t.Fatal("expected error for unknown enemy")
	}
}

func TestBuildEnemyCopiesSpec(t *testing.T) {
	spec, err := LoadEncounterSpec("dummy")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	e := BuildEnemy(spec)
	if e.HP != spec.HP || e.MaxHP != spec.HP {
		t.Fatalf("enemy hp = %g/%g, want %g", e.HP, e.MaxHP, spec.HP)
	}
	if len(e.Acts) != len(spec.Acts) || len(e.Dialogue) != len(spec.Dialogue) {
		t.Fatal("acts/dialogue not carried over")
	}
}

func TestBuildItems(t *testing.T) {
	spec, err := LoadEncounterSpec("dummy")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	items := BuildItems(spec)
	if len(items) != len(spec.Items) || len(items) == 0 {
		t.Fatalf("items = %d, want %d", len(items), len(spec.Items))
	}
	if items[0].Heal <= 0 {
		t.Fatalf("item heal = %g, want positive", items[0].Heal)
	}
}

func TestValidateRejectsBadItems(t *testing.T) {
	spec := validSpec()
	spec.Items = []ItemSpec{{Name: "", Heal: 0}}
	err := spec.Validate()
	if err == nil {
		t.Fatal("bad items accepted")
	}
	for _, want := range []string{"items[0]: name is empty", "heal must be positive"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q:\n%s", want, err)
		}
	}
}

func TestBuildPatternsSpawn(t *testing.T) {
	spec := validSpec()
	builders := BuildPatterns(spec)
	if len(builders) != 1 {
		t.Fatalf("builders = %d, want 1", len(builders))
	}

	env := &attack.Env{
		Arena:  cp.BB{L: 0, B: 0, R: 320, T: 240},
		Target: cp.Vector{X: 160, Y: 120},
	}
	p := builders[0]()
	p.Update(env)
	if got := p.LiveCount(); got != 4 {
		t.Fatalf("live after spawn tick = %d, want 4", got)
	}

	// builders replay: a second instance starts fresh
	q := builders[0]()
	if q.LiveCount() != 0 {
		t.Fatal("second build not fresh")
	}
	q.Update(env)
	if got := q.LiveCount(); got != 4 {
		t.Fatalf("second build live after spawn tick = %d, want 4", got)
	}
}

func TestBuildPhasedTurnRunsComposer(t *testing.T) {
	spec := validSpec()
	spec.Patterns = append(spec.Patterns, PatternSpec{
		Name: "both_rows",
		Phases: []PhaseSpec{
			{Pattern: "p", Duration: 4, Gap: 2},
			{Pattern: "p", Duration: 4},
		},
	})
	if err := spec.Validate(); err != nil {
		t.Fatalf("phased spec rejected: %v", err)
	}

	builders := BuildPatterns(spec)
	if len(builders) != 2 {
		t.Fatalf("builders = %d, want 2", len(builders))
	}

	env := &attack.Env{
		Arena:  cp.BB{L: 0, B: 0, R: 320, T: 240},
		Target: cp.Vector{X: 160, Y: 120},
	}
	r := builders[1]()
	r.Update(env)
	if got := r.LiveCount(); got != 4 {
		t.Fatalf("live in first phase = %d, want 4", got)
	}

	for i := 0; i < 3; i++ {
		r.Update(env)
	}
	if got := r.LiveCount(); got != 0 {
		t.Fatalf("live during gap = %d, want 0", got)
	}

	for i := 0; i < 2; i++ {
		r.Update(env)
	}
	r.Update(env)
	if got := r.LiveCount(); got != 4 {
		t.Fatalf("live in second phase = %d, want 4", got)
	}

	for i := 0; i < 10 && r.Active(); i++ {
		r.Update(env)
	}
	if r.Active() {
		t.Fatal("phased turn never completed")
	}
}

func TestValidateRejectsBadPhases(t *testing.T) {
	spec := validSpec()
	spec.Patterns = append(spec.Patterns, PatternSpec{
		Name: "broken",
		Waves: []WaveSpec{
			{Type: "projectiles"},
		},
		Phases: []PhaseSpec{
			{Pattern: "no_such", Duration: 0, Gap: -1},
		},
	})
	err := spec.Validate()
	if err == nil {
		t.Fatal("bad phases accepted")
	}
	for _, want := range []string{
		"phases and waves are mutually exclusive",
		`references unknown wave pattern "no_such"`,
		"duration must be positive",
		"gap must not be negative",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q:\n%s", want, err)
		}
	}
}

func TestWaveModifiersAttach(t *testing.T) {
	w := WaveSpec{Type: "projectiles", Count: 2, Side: "top", Speed: 2,
		Modifiers: []ModifierSpec{{Kind: "scale", From: 0.2, To: 1, Duration: 10, Easing: "out_quad"}}}

	env := &attack.Env{Arena: cp.BB{L: 0, B: 0, R: 320, T: 240}}
	objs := applyModifiers(spawnWave(w, nil, env), w.Modifiers)
	if len(objs) != 2 {
		t.Fatalf("spawned = %d, want 2", len(objs))
	}
	p, ok := objs[0].(*attack.Projectile)
	if !ok {
		t.Fatalf("object type = %T, want *attack.Projectile", objs[0])
	}
	if p.ModifierCount() != 1 {
		t.Fatalf("modifiers = %d, want 1", p.ModifierCount())
	}

	for i := 0; i < 10; i++ {
		p.Update(env)
	}
	if p.Scale != 1 {
		t.Fatalf("scale after ramp = %g, want 1", p.Scale)
	}
}

func TestUnknownModifierKindSkipped(t *testing.T) {
	if m := buildModifier(ModifierSpec{Kind: "teleport"}); m != nil {
		t.Fatalf("unknown kind built %T", m)
	}
	if m := buildModifier(ModifierSpec{Kind: "alpha", From: 1, To: 0, Duration: 5}); m == nil {
		t.Fatal("known kind not built")
	}
}

func TestBuildSkipsUnknownWaveType(t *testing.T) {
	spec := validSpec()
	spec.Patterns[0].Waves = append(spec.Patterns[0].Waves, WaveSpec{Type: "kitchen_sink"})

	p := buildPattern(spec.Patterns[0], nil)
	env := &attack.Env{Arena: cp.BB{L: 0, B: 0, R: 320, T: 240}}
	p.Update(env)
	if got := p.LiveCount(); got != 4 {
		t.Fatalf("live = %d, want 4 with the unknown wave skipped", got)
	}
}

func TestBuildSoulModes(t *testing.T) {
	arena := cp.BB{L: 0, B: 0, R: 320, T: 240}
	tests := []struct {
		field string
		want  string
	}{
		{"", "normal"},
		{"normal", "normal"},
		{"shield", "shield"},
		{"gravity", "gravity"},
		{"ranged", "ranged"},
		{"rail", "rail"},
	}
	for _, tt := range tests {
		m := BuildSoulMode(&EncounterSpec{Soul: tt.field}, arena)
		if m.Name() != tt.want {
			t.Fatalf("soul %q built mode %q, want %q", tt.field, m.Name(), tt.want)
		}
	}
	if r, ok := BuildSoulMode(&EncounterSpec{Soul: "rail"}, arena).(*soul.Rail); !ok || len(r.Lines) == 0 {
		t.Fatal("rail mode built without lines")
	}
}

func TestEmbeddedScriptsCompile(t *testing.T) {
	for _, name := range []string{"drift.tengo", "lunge.tengo"} {
		t.Run(name, func(t *testing.T) {
			if ms := compileScript(name); ms == nil {
				t.Fatalf("script %s failed to load or compile", name)
			}
		})
	}
}
