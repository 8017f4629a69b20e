package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/evilwizard/internal/game/combat"
	"github.com/cory-johannsen/evilwizard/internal/game/narration"
	"github.com/cory-johannsen/evilwizard/internal/game/ruleset"
)

func TestRenderer_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, Palette{}, false)
	r.Render(narration.Event{Kind: narration.KindTurn, Text: combat.PlayerTurnHeader})
	r.Render(narration.Event{Kind: narration.KindAttack, Text: "Hero attacks The Dark Wizard for 30 damage!"})
	r.Render(narration.Event{Kind: narration.KindGameOver, Text: "Game Over."})
	require.NoError(t, r.Err())
	assert.Equal(t, "\n--- Your Turn ---\nHero attacks The Dark Wizard for 30 damage!\n\nGame Over.\n", buf.String())
}

func TestRenderer_ColorByKind(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, Palette{Enabled: true}, false)
	assert.Equal(t, Colorize(Green, "healed"), r.FormatEvent(narration.Event{Kind: narration.KindHeal, Text: "healed"}))
	assert.Equal(t, "\n"+Colorize(BrightGreen, "won"), r.FormatEvent(narration.Event{Kind: narration.KindVictory, Text: "won"}))
	assert.Equal(t, "x", r.FormatEvent(narration.Event{Kind: "unknown", Text: "x"}))
}

func TestRenderer_InteractiveSkipsPlayerHeader(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, Palette{}, true)
	r.Render(narration.Event{Kind: narration.KindTurn, Text: combat.PlayerTurnHeader})
	r.Render(narration.Event{Kind: narration.KindTurn, Text: "--- The Dark Wizard's Turn ---"})
	assert.Equal(t, "\n--- The Dark Wizard's Turn ---\n", buf.String())
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("closed")
}

func TestRenderer_StopsAfterWriteError(t *testing.T) {
	w := &failingWriter{}
	r := NewRenderer(w, Palette{}, false)
	r.Println("a", "b")
	r.Render(narration.Event{Kind: narration.KindStats, Text: "c"})
	assert.Error(t, r.Err())
	assert.Equal(t, 1, w.n)
}

func TestNewRenderer_NilWriterPanics(t *testing.T) {
	assert.Panics(t, func() { NewRenderer(nil, Palette{}, false) })
}

func TestRenderClassMenu(t *testing.T) {
	reg, err := ruleset.LoadDefaultRegistry()
	require.NoError(t, err)
	menu := RenderClassMenu(reg.PlayerClasses())
	lines := strings.Split(strings.TrimSpace(menu), "\n")
	require.Len(t, lines, 15)
	assert.Equal(t, "1. Warrior", lines[0])
	assert.Equal(t, "12. Rogue", lines[11])
	assert.Equal(t, "15. Wizard", lines[14])
}

func TestRenderActionMenu(t *testing.T) {
	assert.Equal(t, "\n--- Your Turn ---\n1. Normal Attack\n2. Use Special Ability\n3. Heal\n4. View Stats\n", RenderActionMenu(Palette{}))
}

func TestRenderAbilityMenu(t *testing.T) {
	assert.Equal(t, "\nChoose a special ability:\n1. Quick Shot\n2. Evade\n", RenderAbilityMenu([]string{"Quick Shot", "Evade"}))
}
