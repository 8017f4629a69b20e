package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Chooser picks a uniform index in [0, n). *dice.Roller satisfies it.
type Chooser interface {
	Choose(n int) int
}

// RegisterModules installs the engine global into L:
//
//	engine.random(n)        uniform integer in 1..n drawn from chooser
//	engine.log.debug(msg)   and info, warn, error, written to logger
//
// Precondition: L must be from NewSandboxedState; chooser and logger must be non-nil.
// Postcondition: engine global is defined in L.
func RegisterModules(L *lua.LState, chooser Chooser, logger *zap.Logger) {
	engine := L.NewTable()

	L.SetField(engine, "random", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		if n < 1 {
			L.ArgError(1, "n must be >= 1")
			return 0
		}
		L.Push(lua.LNumber(chooser.Choose(n) + 1))
		return 1
	}))

	log := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": logger.Debug,
		"info":  logger.Info,
		"warn":  logger.Warn,
		"error": logger.Error,
	}
	for name, fn := range levels {
		L.SetField(log, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	L.SetField(engine, "log", log)

	L.SetGlobal("engine", engine)
}
