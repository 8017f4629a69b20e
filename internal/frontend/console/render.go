package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/evilwizard/internal/game/combat"
	"github.com/cory-johannsen/evilwizard/internal/game/narration"
	"github.com/cory-johannsen/evilwizard/internal/game/ruleset"
)

// Intro is printed before character creation.
var Intro = []string{
	"Welcome, brave adventurer!",
	"In this epic quest, you will choose a hero from an elite roster of champions, each with legendary abilities.",
	"Your mission is to defeat the powerful Evil Wizard who threatens to plunge the realm into darkness.",
	"Face challenging battles, master unique skills, and forge your destiny on the battlefield!",
	"Good luck, and may your hero triumph over evil!",
}

var kindColors = map[narration.Kind]string{
	narration.KindTurn:            BrightYellow,
	narration.KindAttack:          Red,
	narration.KindAbility:         BrightMagenta,
	narration.KindAbilityRejected: Yellow,
	narration.KindHeal:            Green,
	narration.KindHealRejected:    Yellow,
	narration.KindBuff:            BrightCyan,
	narration.KindSelfDamage:      Magenta,
	narration.KindRegenerate:      BrightBlue,
	narration.KindStats:           Cyan,
	narration.KindInvalidChoice:   Yellow,
	narration.KindDefeat:          BrightRed,
	narration.KindVictory:         BrightGreen,
	narration.KindLoss:            BrightRed,
	narration.KindGameOver:        Bold,
}

// spaced kinds are preceded by a blank line.
var spaced = map[narration.Kind]bool{
	narration.KindTurn:     true,
	narration.KindVictory:  true,
	narration.KindLoss:     true,
	narration.KindGameOver: true,
}

// Renderer writes narration events as terminal lines.
type Renderer struct {
	w       io.Writer
	palette Palette
	// interactive omits player turn headers; the Prompter prints them with the menu.
	interactive bool
	err         error
}

// NewRenderer creates a Renderer writing to w.
//
// Precondition: w must be non-nil.
func NewRenderer(w io.Writer, palette Palette, interactive bool) *Renderer {
	if w == nil {
		panic("console.NewRenderer: writer must not be nil")
	}
	return &Renderer{w: w, palette: palette, interactive: interactive}
}

// FormatEvent returns the styled line for e without a trailing newline.
func (r *Renderer) FormatEvent(e narration.Event) string {
	line := r.palette.Paint(kindColors[e.Kind], e.Text)
	if spaced[e.Kind] {
		line = "\n" + line
	}
	return line
}

// Render writes e. It has the signature of combat.Sink.
func (r *Renderer) Render(e narration.Event) {
	if r.interactive && e.Kind == narration.KindTurn && e.Text == combat.PlayerTurnHeader {
		return
	}
	r.write(r.FormatEvent(e) + "\n")
}

// Println writes plain lines.
func (r *Renderer) Println(lines ...string) {
	for _, l := range lines {
		r.write(l + "\n")
	}
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error { return r.err }

func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	if _, err := io.WriteString(r.w, s); err != nil {
		r.err = err
	}
}

// RenderClassMenu lists player classes by menu number.
func RenderClassMenu(classes []*ruleset.ClassDefinition) string {
	var b strings.Builder
	for _, c := range classes {
		fmt.Fprintf(&b, "%d. %s\n", c.Number, c.Name)
	}
	return b.String()
}

// RenderActionMenu returns the per-turn action menu.
func RenderActionMenu(p Palette) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(p.Paint(BrightYellow, combat.PlayerTurnHeader))
	b.WriteString("\n1. Normal Attack\n2. Use Special Ability\n3. Heal\n4. View Stats\n")
	return b.String()
}

// RenderAbilityMenu numbers ability display names from 1.
func RenderAbilityMenu(names []string) string {
	var b strings.Builder
	b.WriteString("\nChoose a special ability:\n")
	for i, n := range names {
		fmt.Fprintf(&b, "%d. %s\n", i+1, n)
	}
	return b.String()
}
