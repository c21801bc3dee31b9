package main

import (
	"io"
	"os"
	"strings"

	"github.com/Alia5/modelboiler/internal/config"
	"github.com/Alia5/modelboiler/internal/configpaths"
	"github.com/Alia5/modelboiler/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	version, err := config.GetVersion()
	if err != nil {
		version = config.Version
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("modelboiler"),
		kong.Description("Generate Swift Codable boilerplate from struct declarations"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	rawLogger, rawFile, err := openRawLogger(cli.Log, os.Stderr)
	if err != nil {
		logger.Error("failed to open raw log file", "file", cli.Log.RawFile, "error", err)
	}
	if rawFile != nil {
		closeFiles = append(closeFiles, rawFile)
	}

	ctx.Bind(logger)
	ctx.BindTo(rawLogger, (*log.RawLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// openRawLogger picks the raw text log destination: the configured file,
// stderr when tracing, or nowhere. On error a no-op logger is returned.
func openRawLogger(cfg config.Log, stderr io.Writer) (log.RawLogger, io.Closer, error) {
	switch {
	case cfg.RawFile != "":
		f, err := os.OpenFile(cfg.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return log.NewRaw(nil), nil, err
		}
		return log.NewRaw(f), f, nil
	case cfg.Level == "trace":
		return log.NewRaw(stderr), nil, nil
	default:
		return log.NewRaw(nil), nil, nil
	}
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("MODELBOILER_CONFIG"); v != "" {
		return v
	}
	return ""
}
