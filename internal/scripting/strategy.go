package scripting

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/evilwizard/content"
	"github.com/cory-johannsen/evilwizard/internal/game/combat"
)

// HookChooseAction is the Lua global every strategy must define. It receives
// the battle state table and returns the next action.
const HookChooseAction = "choose_action"

// ErrUnknownStrategy is returned for a built-in strategy name that does not exist.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy is a Lua player strategy. It implements combat.ActionSelector.
//
// A Strategy owns a single LState; SelectAction calls are serialized.
type Strategy struct {
	Name   string
	mu     sync.Mutex
	vm     *lua.LState
	limit  int
	logger *zap.Logger
}

// NewStrategy compiles source in a fresh sandbox.
//
// Precondition: chooser must be non-nil; limit >= 0 (0 uses DefaultInstructionLimit).
// Postcondition: Returns an error if the script fails to load, exceeds its
// budget while loading, or does not define choose_action.
func NewStrategy(name, source string, chooser Chooser, limit int, logger *zap.Logger) (*Strategy, error) {
	if chooser == nil {
		panic("scripting.NewStrategy: chooser must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("strategy", name))

	L := NewSandboxedState()
	RegisterModules(L, chooser, logger)

	done := withBudget(context.Background(), L, limit)
	err := L.DoString(source)
	done()
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: loading strategy %q: %w", name, err)
	}
	if _, ok := L.GetGlobal(HookChooseAction).(*lua.LFunction); !ok {
		L.Close()
		return nil, fmt.Errorf("scripting: strategy %q does not define %s", name, HookChooseAction)
	}
	return &Strategy{Name: name, vm: L, limit: limit, logger: logger}, nil
}

// LoadFile loads the strategy at p in fsys; its name is the file's base name
// without extension.
func LoadFile(fsys fs.FS, p string, chooser Chooser, limit int, logger *zap.Logger) (*Strategy, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading %q: %w", p, err)
	}
	return NewStrategy(strings.TrimSuffix(path.Base(p), ".lua"), string(data), chooser, limit, logger)
}

// BuiltinNames lists the embedded strategies in lexicographic order.
func BuiltinNames() []string {
	entries, err := fs.ReadDir(content.Strategies, content.StrategiesDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".lua" {
			names = append(names, strings.TrimSuffix(e.Name(), ".lua"))
		}
	}
	sort.Strings(names)
	return names
}

// LoadBuiltin loads the embedded strategy called name.
//
// Postcondition: Returns an error wrapping ErrUnknownStrategy when no such strategy exists.
func LoadBuiltin(name string, chooser Chooser, limit int, logger *zap.Logger) (*Strategy, error) {
	p := path.Join(content.StrategiesDir, name+".lua")
	if _, err := fs.Stat(content.Strategies, p); err != nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownStrategy, name, strings.Join(BuiltinNames(), ", "))
	}
	return LoadFile(content.Strategies, p, chooser, limit, logger)
}

// Open loads a strategy by built-in name, or from disk when ref names a .lua file.
func Open(ref string, chooser Chooser, limit int, logger *zap.Logger) (*Strategy, error) {
	if filepath.Ext(ref) == ".lua" {
		return LoadFile(os.DirFS(filepath.Dir(ref)), filepath.Base(ref), chooser, limit, logger)
	}
	return LoadBuiltin(ref, chooser, limit, logger)
}

// Close releases the Lua VM.
func (s *Strategy) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vm.Close()
}

// SelectAction calls choose_action with a snapshot of view.
//
// Lua runtime errors, budget exhaustion and unrecognized return values are
// logged at Warn and become combat.Invalid(); they are never propagated.
//
// Postcondition: Returns a non-nil error only if ctx is done.
func (s *Strategy) SelectAction(ctx context.Context, view combat.View) (combat.Action, error) {
	if err := ctx.Err(); err != nil {
		return combat.Action{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	state := stateTable(s.vm, view)
	done := withBudget(ctx, s.vm, s.limit)
	err := s.vm.CallByParam(lua.P{
		Fn:      s.vm.GetGlobal(HookChooseAction),
		NRet:    1,
		Protect: true,
	}, state)
	done()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return combat.Action{}, ctxErr
		}
		s.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", HookChooseAction),
			zap.Int("turn", view.Turn),
			zap.Error(err),
		)
		return combat.Invalid(), nil
	}

	ret := s.vm.Get(-1)
	s.vm.Pop(1)
	action, ok := toAction(ret)
	if !ok {
		s.logger.Warn("scripting: unrecognized action",
			zap.Int("turn", view.Turn),
			zap.String("value", ret.String()),
		)
	}
	s.logger.Debug("strategy chose", zap.Int("turn", view.Turn), zap.Stringer("action", action))
	return action, nil
}

func characterTable(L *lua.LState, c combat.CharacterView) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("name", lua.LString(c.Name))
	t.RawSetString("class", lua.LString(c.ClassID))
	t.RawSetString("health", lua.LNumber(c.Health))
	t.RawSetString("max_health", lua.LNumber(c.MaxHealth))
	t.RawSetString("attack_power", lua.LNumber(c.AttackPower))
	return t
}

// stateTable converts view into the table passed to choose_action.
func stateTable(L *lua.LState, view combat.View) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("turn", lua.LNumber(view.Turn))
	t.RawSetString("player", characterTable(L, view.Player))
	t.RawSetString("boss", characterTable(L, view.Boss))
	abilities := L.NewTable()
	for _, name := range view.Abilities {
		abilities.Append(lua.LString(name))
	}
	t.RawSetString("abilities", abilities)
	return t
}

// toAction converts a choose_action return value. Accepted forms are an
// action name ("attack", "inspect") or a table
// {action = "attack"|"ability"|"heal"|"inspect", index = n, amount = n}.
func toAction(v lua.LValue) (combat.Action, bool) {
	switch val := v.(type) {
	case lua.LString:
		return namedAction(string(val), 0, 0)
	case *lua.LTable:
		name, ok := val.RawGetString("action").(lua.LString)
		if !ok {
			return combat.Invalid(), false
		}
		return namedAction(string(name), intField(val, "index"), intField(val, "amount"))
	default:
		return combat.Invalid(), false
	}
}

func namedAction(name string, index, amount int) (combat.Action, bool) {
	switch strings.ToLower(name) {
	case "attack":
		return combat.Attack(), true
	case "ability":
		return combat.UseAbility(index), true
	case "heal":
		return combat.Heal(amount), true
	case "inspect":
		return combat.Inspect(), true
	default:
		return combat.Invalid(), false
	}
}

func intField(t *lua.LTable, key string) int {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}
