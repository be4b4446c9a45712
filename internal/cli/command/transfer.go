package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/prefmirror/internal/staging"
)

// ExportCommand returns the export command.
func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write every stored setting as a YAML document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Write to FILE instead of standard output",
			},
		},
		Action: exportAction,
	}
}

func exportAction(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}
	s := e.mirror.Load(cmdContext(c))

	path := c.String("file")
	if path == "" {
		return staging.Export(c.App.Writer, s)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := staging.Export(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportCommand returns the import command.
func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Apply a YAML settings document in one transaction",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{dryRunFlag},
		Action:    importAction,
	}
}

func importAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("import requires exactly one FILE", 2)
	}
	path := c.Args().First()

	return stageAndSave(c, func(s *staging.Snapshot) error {
		return applyFile(path, s)
	})
}

// applyFile overlays the YAML document at path onto s.
func applyFile(path string, s *staging.Snapshot) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	imported, err := staging.Import(f, s)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	*s = *imported
	return nil
}
