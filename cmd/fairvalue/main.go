package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", "", "path to the YAML config file (default $CONFIG_PATH, then configs/config.yaml)")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&serveCmd{}, "")
	commander.Register(&valueCmd{out: os.Stdout}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
