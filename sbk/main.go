package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"

	"github.com/yoon/stockbook/cmd"
	"github.com/yoon/stockbook/config"
)

func main() {
	// Shell completion: when invoked by the shell's completion hook this
	// prints candidates and exits, otherwise it is a no-op.
	subs := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		subs[c.Name()] = &complete.Command{}
	}
	completer := &complete.Command{Sub: subs}
	completer.Complete("sbk")

	if cfg, err := config.Load(); err == nil {
		cfg.SetupLogging()
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
