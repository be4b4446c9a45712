package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/prefmirror/internal/staging"
)

var dryRunFlag = &cli.BoolFlag{
	Name:  "dry-run",
	Usage: "Show the changes without saving them",
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Change settings and save them in one transaction",
		ArgsUsage: "KEY=VALUE [KEY=VALUE...]",
		Flags:     []cli.Flag{dryRunFlag},
		Action:    setAction,
	}
}

func setAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("set requires at least one KEY=VALUE", 2)
	}

	return stageAndSave(c, func(s *staging.Snapshot) error {
		for _, arg := range c.Args().Slice() {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("argument %q is not KEY=VALUE", arg)
			}
			if err := s.Set(strings.TrimSpace(name), value); err != nil {
				return err
			}
		}
		return nil
	})
}

// ResetCommand returns the reset command.
func ResetCommand() *cli.Command {
	return &cli.Command{
		Name:      "reset",
		Usage:     "Restore settings to their defaults (all when no KEY is given)",
		ArgsUsage: "[KEY...]",
		Flags:     []cli.Flag{dryRunFlag},
		Action:    resetAction,
	}
}

func resetAction(c *cli.Context) error {
	return stageAndSave(c, func(s *staging.Snapshot) error {
		if c.NArg() == 0 {
			*s = *staging.WithDefaults()
			return nil
		}
		for _, name := range c.Args().Slice() {
			if err := s.ResetField(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// stageAndSave loads a snapshot, applies edit to a copy and saves the copy
// when anything changed. The changes are printed either way.
func stageAndSave(c *cli.Context, edit func(*staging.Snapshot) error) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}
	ctx := cmdContext(c)

	current := e.mirror.Load(ctx)
	next := current.Clone()
	if err := edit(next); err != nil {
		return err
	}

	changes := current.Diff(next)
	if len(changes) == 0 {
		fmt.Fprintln(c.App.ErrWriter, "no changes")
		return nil
	}

	if !c.Bool("dry-run") {
		if err := e.mirror.Save(ctx, next); err != nil {
			return err
		}
	}
	return render(c, changes)
}
