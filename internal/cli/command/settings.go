package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/prefmirror/internal/cli/output"
	"github.com/yndnr/prefmirror/internal/core/domain"
	"github.com/yndnr/prefmirror/internal/setting"
	"github.com/yndnr/prefmirror/internal/staging"
)

// ShowCommand returns the show command.
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show every stored setting",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "changed",
				Usage: "Only show settings that differ from their default",
			},
		},
		Action: showAction,
	}
}

func showAction(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	s := e.mirror.Load(cmdContext(c))
	if c.Bool("changed") {
		return render(c, staging.WithDefaults().Diff(s))
	}
	return renderSnapshot(c, s)
}

// renderSnapshot prints a whole snapshot. YAML output is the same
// document export writes, so it can be fed back to import.
func renderSnapshot(c *cli.Context, s *staging.Snapshot) error {
	switch ParseGlobalFlags(c).Output {
	case output.FormatYAML:
		return staging.Export(c.App.Writer, s)
	case output.FormatJSON:
		return render(c, s)
	default:
		return render(c, s.Fields())
	}
}

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one or more settings",
		ArgsUsage: "KEY [KEY...]",
		Action:    getAction,
	}
}

func getAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("get requires at least one KEY", 2)
	}

	for _, name := range c.Args().Slice() {
		if _, ok := setting.Lookup(name); !ok {
			return domain.ErrUnknownSetting.WithDetails(name)
		}
	}

	e, err := getEnv(c)
	if err != nil {
		return err
	}
	s := e.mirror.Load(cmdContext(c))

	// A single key in table mode prints the bare value for scripting
	if c.NArg() == 1 && ParseGlobalFlags(c).Output == output.FormatTable {
		v, _ := s.Get(c.Args().First())
		_, err := c.App.Writer.Write([]byte(v + "\n"))
		return err
	}

	fields := s.Fields()
	byName := make(map[string]staging.Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	selected := make([]staging.Field, 0, c.NArg())
	for _, name := range c.Args().Slice() {
		selected = append(selected, byName[name])
	}
	return render(c, selected)
}

// DefaultsCommand returns the defaults command.
func DefaultsCommand() *cli.Command {
	return &cli.Command{
		Name:  "defaults",
		Usage: "Show the default value of every setting",
		Action: func(c *cli.Context) error {
			return renderSnapshot(c, staging.WithDefaults())
		},
	}
}

// keyRow is one line of the keys listing.
type keyRow struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Default string `json:"default" yaml:"default"`
}

// KeysCommand returns the keys command.
func KeysCommand() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "List the settings catalog",
		Action: func(c *cli.Context) error {
			all := setting.All()
			rows := make([]keyRow, len(all))
			for i, d := range all {
				rows[i] = keyRow{Name: d.Name(), Type: d.Type(), Default: d.DefaultString()}
			}
			return render(c, rows)
		},
	}
}
