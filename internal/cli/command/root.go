package command

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/prefmirror/internal/cli/output"
	"github.com/yndnr/prefmirror/internal/core/domain"
	"github.com/yndnr/prefmirror/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:     "prefmirror",
		Usage:    "Inspect and edit the staged settings store",
		Version:  buildinfo.String(),
		Flags:    globalFlags(),
		Metadata: map[string]any{},
		Commands: []*cli.Command{
			ShowCommand(),
			GetCommand(),
			DefaultsCommand(),
			KeysCommand(),
			SetCommand(),
			ResetCommand(),
			ExportCommand(),
			ImportCommand(),
			StatusCommand(),
			BackupCommand(),
			GCCommand(),
			WatchCommand(),
		},
		Before: func(c *cli.Context) error {
			_, err := output.ParseFormat(c.String("output"))
			return err
		},
		After: closeEnv,
		// main prints the error and picks the exit status
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file",
			EnvVars: []string{"PREFMIRROR_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "data-dir",
			Aliases: []string{"d"},
			Usage:   "Settings store directory (overrides storage.data_dir)",
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "Storage engine: badger, memory (overrides storage.engine)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write metrics in node-exporter textfile format after the command",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config      string
	DataDir     string
	Engine      string
	Output      output.Format
	Verbose     bool
	MetricsFile string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	format, _ := output.ParseFormat(c.String("output"))
	return &GlobalFlags{
		Config:      c.String("config"),
		DataDir:     c.String("data-dir"),
		Engine:      c.String("engine"),
		Output:      format,
		Verbose:     c.Bool("verbose"),
		MetricsFile: c.String("metrics-file"),
	}
}

// overrides maps explicitly set flags to configuration keys.
func (f *GlobalFlags) overrides() map[string]any {
	o := make(map[string]any)
	if f.DataDir != "" {
		o["storage.data_dir"] = f.DataDir
	}
	if f.Engine != "" {
		o["storage.engine"] = f.Engine
	}
	if f.Verbose {
		o["log.level"] = "debug"
	}
	if f.MetricsFile != "" {
		o["metrics.textfile"] = f.MetricsFile
	}
	return o
}

// render writes data to the app writer in the selected format.
func render(c *cli.Context, data any) error {
	return output.NewFormatter(ParseGlobalFlags(c).Output).Format(c.App.Writer, data)
}

// PrintError prints err to w, prefixed with its error code when it has one.
func PrintError(w io.Writer, err error) {
	if code := domain.GetErrorCode(err); code != "" {
		fmt.Fprintf(w, "error [%s]: %v\n", code, err)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}

// ExitCode maps a command error to the process exit status: 2 for bad
// input (usage errors and PM-SET codes), 1 for store and other failures.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exit cli.ExitCoder
	if errors.As(err, &exit) {
		return exit.ExitCode()
	}
	if domain.IsDomainError(err, domain.ErrStore.Code) {
		return 1
	}
	if strings.HasPrefix(domain.GetErrorCode(err), "PM-SET-") {
		return 2
	}
	return 1
}
