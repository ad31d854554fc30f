package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/pflag"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	godebug "github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/lockbot/internal/config"
	"github.com/baalimago/lockbot/internal/dispatch"
	"github.com/baalimago/lockbot/internal/logging"
	"github.com/baalimago/lockbot/internal/session"
	"github.com/baalimago/lockbot/internal/utils"
)

// ErrUserInitiatedExit is returned when the process should stop without
// running the loop, such as after printing help or version.
var ErrUserInitiatedExit = errors.New("user initiated exit")

// App is a configured session, ready to run.
type App struct {
	Loop   *session.Loop
	closer io.Closer
}

func (a *App) Run(ctx context.Context, in io.Reader) error {
	a.Loop.Banner()
	return a.Loop.Run(ctx, in)
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func printVersion(out io.Writer) error {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("failed to read build info")
	}
	fmt.Fprintf(out, "version: %v, go version: %v, checksum: %v\n", bi.Main.Version, bi.GoVersion, bi.Main.Sum)
	return nil
}

// Setup parses args, loads the configuration and constructs the session.
// Output of the session is written to out.
func Setup(args []string, usage string, out *os.File) (*App, error) {
	flags, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(out, usage)
			return nil, ErrUserInitiatedExit
		}
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	if flags.Version {
		if err := printVersion(out); err != nil {
			return nil, err
		}
		return nil, ErrUserInitiatedExit
	}

	confDir := flags.ConfigDir
	if confDir == "" {
		confDir, err = utils.GetConfigDir()
		if err != nil {
			return nil, err
		}
	}
	conf, err := config.Load(confDir)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(&conf, flags)
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("config: %v\n", godebug.IndentedJsonFmt(conf.File)))
	}

	logger, closer, err := logging.Setup(conf.LogFile, conf.LogMaxSizeMB, conf.LogBackups)
	if err != nil {
		return nil, fmt.Errorf("failed to setup log file: %w", err)
	}
	slog.SetDefault(logger)

	d := dispatch.New(dispatch.DefaultRegistry(), conf.Clients(), conf.TrendLookup())
	printer := utils.Printer{
		Out:   out,
		Color: !flags.PrintRaw && utils.UseColor(out),
		Width: utils.TermWidth(),
	}
	loop, err := session.New(d, conf.DefaultService, flags.Model, conf.HistoryMax, printer)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	slog.Info("session started", "service", loop.State().Service.Name, "model", loop.State().Model)
	return &App{Loop: loop, closer: closer}, nil
}

func applyFlagOverrides(conf *config.Config, flags Configurations) {
	if flags.Service != "" {
		conf.DefaultService = flags.Service
	}
	if flags.LogFile != "" {
		conf.LogFile = flags.LogFile
	}
}
