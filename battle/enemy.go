package battle

// Act is one non-violent interaction the player can take on their turn.
type Act struct {
	Name     string
	Response string
	// MercyGain is added to the enemy's mercy meter when used.
	MercyGain float64
}

// Item is a consumable that restores player HP.
type Item struct {
	Name string
	Heal float64
}

// Enemy is the runtime combatant: spec numbers plus the mutable fight
// state (hp, mercy).
type Enemy struct {
	Name    string
	HP      float64
	MaxHP   float64
	Attack  float64
	Defense float64

	Dialogue []string
	Acts     []Act

	// Mercy in [0, 100]. At 100 the enemy is spareable.
	Mercy float64

	dialogueIdx int
}

// Alive reports whether the enemy still fights.
func (e *Enemy) Alive() bool { return e != nil && e.HP > 0 }

// Spareable reports whether the mercy meter is full.
func (e *Enemy) Spareable() bool { return e != nil && e.Mercy >= 100 }

// AddMercy raises the mercy meter, capped at 100.
func (e *Enemy) AddMercy(amount float64) {
	if e == nil || amount <= 0 {
		return
	}
	e.Mercy += amount
	if e.Mercy > 100 {
		e.Mercy = 100
	}
}

// NextDialogue cycles through the enemy's idle lines, one per turn.
func (e *Enemy) NextDialogue() string {
	if e == nil || len(e.Dialogue) == 0 {
		return "..."
	}
	line := e.Dialogue[e.dialogueIdx%len(e.Dialogue)]
	e.dialogueIdx++
	return line
}

// TakeDamage applies a hit after defense reduction and returns the
// damage actually dealt. Damage never goes below 1.
func (e *Enemy) TakeDamage(raw float64) float64 {
	if e == nil {
		return 0
	}
	dealt := raw - e.Defense
	if dealt < 1 {
		dealt = 1
	}
	e.HP -= dealt
	if e.HP < 0 {
		e.HP = 0
	}
	return dealt
}
