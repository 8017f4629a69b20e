package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/evilwizard/internal/game/character"
	"github.com/cory-johannsen/evilwizard/internal/game/combat"
	"github.com/cory-johannsen/evilwizard/internal/game/ruleset"
)

// DefaultHeroName is used when the player enters a blank name.
const DefaultHeroName = "Hero"

// ErrInputClosed is returned when the input stream ends before an answer is read.
var ErrInputClosed = errors.New("console: input closed")

type lineResult struct {
	line string
	err  error
}

// Prompter reads player choices from a line-oriented stream. It implements
// combat.ActionSelector.
//
// Lines are read by a single background goroutine so a prompt can be
// abandoned when its context is done. A line that arrives after that is kept
// for the next prompt.
type Prompter struct {
	in      *bufio.Reader
	out     io.Writer
	palette Palette
	logger  *zap.Logger

	start sync.Once
	lines chan lineResult
}

// NewPrompter creates a Prompter reading from in and prompting on out.
//
// Precondition: in and out must be non-nil.
func NewPrompter(in io.Reader, out io.Writer, palette Palette, logger *zap.Logger) *Prompter {
	if in == nil || out == nil {
		panic("console.NewPrompter: in and out must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prompter{
		in:      bufio.NewReader(in),
		out:     out,
		palette: palette,
		logger:  logger,
		lines:   make(chan lineResult),
	}
}

// readLoop delivers input lines until the stream fails, then closes lines.
func (p *Prompter) readLoop() {
	defer close(p.lines)
	for {
		line, err := p.in.ReadString('\n')
		if line != "" {
			p.lines <- lineResult{line: line}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.lines <- lineResult{err: err}
			}
			return
		}
	}
}

// ReadLine writes prompt and returns the next trimmed input line.
//
// Postcondition: Returns ctx.Err() as soon as ctx is done, and ErrInputClosed
// when the stream ends with no pending input.
func (p *Prompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := io.WriteString(p.out, prompt); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	p.start.Do(func() { go p.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-p.lines:
		if !ok {
			return "", ErrInputClosed
		}
		if r.err != nil {
			return "", fmt.Errorf("reading input: %w", r.err)
		}
		return strings.TrimSpace(r.line), nil
	}
}

func (p *Prompter) println(s string) error {
	_, err := io.WriteString(p.out, s+"\n")
	return err
}

// ChooseClassNumber lists the player classes of reg and reads a menu number.
// Non-numeric answers yield 0, which no class uses.
func (p *Prompter) ChooseClassNumber(ctx context.Context, reg *ruleset.Registry) (int, error) {
	if _, err := io.WriteString(p.out, RenderClassMenu(reg.PlayerClasses())); err != nil {
		return 0, err
	}
	answer, err := p.ReadLine(ctx, "Enter the number of your class choice: ")
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(answer)
	if convErr != nil {
		p.logger.Debug("non-numeric class choice", zap.String("input", answer))
		return 0, nil
	}
	return n, nil
}

// ChooseName reads the hero's name, substituting DefaultHeroName for a blank answer.
func (p *Prompter) ChooseName(ctx context.Context) (string, error) {
	name, err := p.ReadLine(ctx, "Enter your character's name: ")
	if err != nil {
		return "", err
	}
	if name == "" {
		return DefaultHeroName, nil
	}
	return name, nil
}

// CreateCharacter asks for a class number and a name, then builds the hero
// with character.Create. A classNumber > 0 or a non-empty name skips the
// matching prompt. Unknown class numbers fall back to the default class and
// say so.
//
// Precondition: reg must pass ruleset.Registry.CheckPlayable.
func (p *Prompter) CreateCharacter(ctx context.Context, reg *ruleset.Registry, classNumber int, name string) (*character.Character, error) {
	var err error
	if classNumber <= 0 {
		if classNumber, err = p.ChooseClassNumber(ctx, reg); err != nil {
			return nil, err
		}
	}
	if name == "" {
		if name, err = p.ChooseName(ctx); err != nil {
			return nil, err
		}
	}
	hero, defaulted := character.Create(reg, classNumber, name)
	if defaulted {
		p.logger.Debug("class choice defaulted", zap.Int("number", classNumber))
		msg := fmt.Sprintf("Invalid choice. Defaulting to %s.", hero.ClassName)
		if err := p.println(p.palette.Paint(Yellow, msg)); err != nil {
			return nil, err
		}
	}
	return hero, nil
}

// SelectAction prints the action menu and reads the player's choice.
// Malformed numbers become malformed actions, which the battle rejects while
// the boss still takes its turn.
func (p *Prompter) SelectAction(ctx context.Context, view combat.View) (combat.Action, error) {
	if _, err := io.WriteString(p.out, RenderActionMenu(p.palette)); err != nil {
		return combat.Action{}, err
	}
	choice, err := p.ReadLine(ctx, "Choose an action: ")
	if err != nil {
		return combat.Action{}, err
	}

	switch choice {
	case "1":
		return combat.Attack(), nil
	case "2":
		if _, err := io.WriteString(p.out, RenderAbilityMenu(view.Abilities)); err != nil {
			return combat.Action{}, err
		}
		answer, err := p.ReadLine(ctx, "Enter the number of your ability choice: ")
		if err != nil {
			return combat.Action{}, err
		}
		return combat.ParseAbilityChoice(answer), nil
	case "3":
		answer, err := p.ReadLine(ctx, "Enter heal amount: ")
		if err != nil {
			return combat.Action{}, err
		}
		return combat.ParseHealChoice(answer), nil
	case "4":
		return combat.Inspect(), nil
	default:
		return combat.Invalid(), nil
	}
}
