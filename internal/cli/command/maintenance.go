package command

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/prefmirror/internal/setting"
)

// statusInfo is the status command output.
type statusInfo struct {
	Engine     string `json:"engine" yaml:"engine"`
	DataDir    string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
	RunState   string `json:"run_state" yaml:"run_state"`
	Settings   int    `json:"settings" yaml:"settings"`
	Keys       uint64 `json:"keys" yaml:"keys"`
	SizeBytes  uint64 `json:"size_bytes" yaml:"size_bytes"`
	LastCommit string `json:"last_commit,omitempty" yaml:"last_commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty" yaml:"commit_time,omitempty"`
}

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show store statistics and the last commit",
		Action: statusAction,
	}
}

func statusAction(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}
	ctx := cmdContext(c)

	stats, err := e.engine.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	info := statusInfo{
		Engine:    e.cfg.Storage.Engine,
		RunState:  e.cell.Current().String(),
		Settings:  len(setting.All()),
		Keys:      stats.TotalKeys,
		SizeBytes: stats.TotalSize,
	}
	if e.badger != nil {
		info.DataDir = e.cfg.Storage.DataDir
	}

	commit, ok, err := e.mirror.LastCommit(ctx)
	if err != nil {
		return err
	}
	if ok {
		info.LastCommit = commit.ID.String()
		info.CommitTime = commit.Time.UTC().Format(time.RFC3339)
	}
	return render(c, info)
}

// BackupCommand returns the backup command.
func BackupCommand() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Write a full store backup stream",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Backup destination",
				Required: true,
			},
		},
		Action: backupAction,
	}
}

func backupAction(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}
	if e.badger == nil {
		return cli.Exit("backup needs the badger engine", 1)
	}

	path := c.String("file")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := e.badger.Backup(cmdContext(c), f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	e.log.Info("backup written", "file", path)
	return nil
}

// GCCommand returns the gc command.
func GCCommand() *cli.Command {
	return &cli.Command{
		Name:   "gc",
		Usage:  "Run value log garbage collection",
		Action: gcAction,
	}
}

func gcAction(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}
	if e.badger == nil {
		return cli.Exit("gc needs the badger engine", 1)
	}

	reclaimed, err := e.badger.GC(cmdContext(c))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "reclaimed about %d bytes\n", reclaimed)
	return nil
}
