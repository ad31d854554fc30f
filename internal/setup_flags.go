package internal

import (
	"github.com/spf13/pflag"
)

type Configurations struct {
	Service   string
	Model     string
	ConfigDir string
	LogFile   string
	PrintRaw  bool
	Version   bool
}

// parseFlags parses args, without the program name. pflag.ErrHelp is
// returned as is when -h/--help is given.
func parseFlags(args []string) (Configurations, error) {
	var c Configurations
	fs := pflag.NewFlagSet("lockbot", pflag.ContinueOnError)
	fs.Usage = func() {}
	fs.StringVarP(&c.Service, "service", "s", "", "Service to start with: grok, openai or cohere. (default is found in config.json)")
	fs.StringVarP(&c.Model, "model", "m", "", "Model to start with, must belong to the service. (default is the first model of the service)")
	fs.BoolVarP(&c.PrintRaw, "raw", "r", false, "Print without colors.")
	fs.StringVar(&c.ConfigDir, "config-dir", "", "Directory of config.json and the log file. (default is $LOCKBOT_CONFIG_HOME or <user config dir>/lockbot)")
	fs.StringVar(&c.LogFile, "log-file", "", "Path of the log file. (default is found in config.json)")
	fs.BoolVarP(&c.Version, "version", "v", false, "Print version and exit.")
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	return c, nil
}
