// Package content embeds the built-in game data shipped with the binary.
package content

import "embed"

// ClassesDir is the directory inside Classes holding one YAML file per class.
const ClassesDir = "classes"

// Classes holds the built-in player and boss class definitions.
//
//go:embed classes/*.yaml
var Classes embed.FS

// StrategiesDir is the directory inside Strategies holding the built-in Lua
// strategy scripts, one per file named <strategy>.lua.
const StrategiesDir = "strategies"

// Strategies holds the built-in simulation strategies.
//
//go:embed strategies/*.lua
var Strategies embed.FS
