// Package config holds the root command line definition.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/Alia5/modelboiler/internal/cmd"
)

// Log configures the slog logger and the raw text log.
type Log struct {
	Level   string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"MODELBOILER_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" env:"MODELBOILER_LOG_FILE"`
	RawFile string `help:"Record raw input and generated output to this file" env:"MODELBOILER_LOG_RAW_FILE"`
}

type CLI struct {
	Version    kong.VersionFlag `help:"Print version and exit"`
	ConfigFile string           `name:"config" help:"Path to a JSON, YAML or TOML config file" env:"MODELBOILER_CONFIG" type:"path"`
	Log        Log              `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" default:"withargs" help:"Generate Codable boilerplate for the Swift declarations in the clipboard"`
	Scan     cmd.Scan          `cmd:"" help:"Print the declarations and inferred property types"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration file helpers"`
}
