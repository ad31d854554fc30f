package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/baalimago/lockbot/internal"
)

const usage = `lockbot - physical security assistant

Prerequisites:
  - Set the XAI_API_KEY environment variable to your xAI API key
  - Set the OPENAI_API_KEY environment variable to your OpenAI API key
  - Set the CO_API_KEY environment variable to your Cohere API key
  - (Optional) Put the keys in a .env file in the working directory instead
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output

Usage: lockbot [flags]

Flags:
  -s, --service string    Service to start with: grok, openai or cohere. (default is found in config.json)
  -m, --model string      Model to start with, must belong to the service. (default is the first model of the service)
  -r, --raw               Print without colors.
      --config-dir string Directory of config.json and the log file. (default is $LOCKBOT_CONFIG_HOME or <user config dir>/lockbot)
      --log-file string   Path of the log file. (default is found in config.json)
  -v, --version           Print version and exit.
  -h, --help              Display this help message.

Commands, once started:
  help                    List commands, services and models
  switch to <service>     Switch service, selecting its default model
  set model <model>       Select a model of the current service
  exit|quit               Leave

Questions mentioning 'trend' are enriched with current trends before being sent.
`

func main() {
	ancli.SetupSlog()
	app, err := internal.Setup(os.Args[1:], usage, os.Stdout)
	if err != nil {
		if errors.Is(err, internal.ErrUserInitiatedExit) {
			os.Exit(0)
		}
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() { shutdown.Monitor(cancel) }()
	err = app.Run(ctx, os.Stdin)
	cancel()
	if closeErr := app.Close(); closeErr != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to close log file: %v\n", closeErr))
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		os.Exit(1)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("session ended\n")
	}
}
