package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"prm/internal/config"
	"prm/internal/logging"
	"prm/internal/maintenance"
	"prm/internal/runlock"
	"prm/internal/services/rclone"
	"prm/internal/shellcmd"
)

type remoteLister interface {
	ListRemotes(ctx context.Context) ([]string, error)
}

type contextOption func(*commandContext)

// withRunner replaces the sh runner used for clean and upload.
func withRunner(r shellcmd.Runner) contextOption {
	return func(c *commandContext) {
		c.runner = r
	}
}

// withRemoteLister replaces the rclone client used for completion.
func withRemoteLister(l remoteLister) contextOption {
	return func(c *commandContext) {
		c.remotes = l
	}
}

// commandContext is shared by every command of one root command tree. The
// store outlives individual invocations; overrides do not.
type commandContext struct {
	configFlag string
	logLevel   string
	logFormat  string

	storeOnce sync.Once
	store     *config.Store

	logger  *slog.Logger
	runner  shellcmd.Runner
	remotes remoteLister
}

func newCommandContext(opts ...contextOption) *commandContext {
	c := &commandContext{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// begin builds the per-invocation logger. It runs before every command.
func (c *commandContext) begin(cmd *cobra.Command) error {
	logger, err := logging.New(logging.Options{
		Level:  c.logLevel,
		Format: c.logFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	id := logging.NewCorrelationID()
	cmd.SetContext(logging.WithCorrelationID(cmd.Context(), id))
	c.logger = logging.WithContext(cmd.Context(), logger).With(logging.FieldCommand, cmd.CommandPath())
	c.logger.Debug("command started", "args", strings.Join(cmd.Flags().Args(), " "))
	if !shouldSkipConfig(cmd) {
		c.configStore()
	}
	return nil
}

func (c *commandContext) componentLogger(component string) *slog.Logger {
	return logging.NewComponentLogger(c.logger, component)
}

func (c *commandContext) configStore() *config.Store {
	c.storeOnce.Do(func() {
		c.store = config.NewStore(
			config.WithPath(c.configFlag),
			config.WithLogger(logging.NewComponentLogger(c.logger, "config")),
		)
	})
	return c.store
}

// freshStore returns the store with the override layer emptied. Every command
// that reads configuration starts here.
func (c *commandContext) freshStore() *config.Store {
	store := c.configStore()
	store.ClearOverrides()
	return store
}

func (c *commandContext) runnerFor(cmd *cobra.Command) shellcmd.Runner {
	if c.runner != nil {
		return c.runner
	}
	runner := shellcmd.NewShellRunner()
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()
	return runner
}

func (c *commandContext) remoteLister() (remoteLister, error) {
	if c.remotes != nil {
		return c.remotes, nil
	}
	return rclone.New(rclone.ResolveBinary(maintenance.RcloneBinary))
}

// execute prints script for a dry run, otherwise runs it under the run lock.
func (c *commandContext) execute(cmd *cobra.Command, component, script string, dryRun bool) error {
	logger := c.componentLogger(component)
	if dryRun {
		logger.Info("dry run, not executing script")
		_, err := fmt.Fprint(cmd.OutOrStdout(), script)
		return err
	}

	lockPath, err := runlock.DefaultPath()
	if err != nil {
		return err
	}
	lock, err := runlock.Acquire(lockPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release run lock", "path", lock.Path(), "error", err)
		}
	}()

	logger.Info("running script", "lock", lock.Path())
	if err := c.runnerFor(cmd).Run(cmd.Context(), script); err != nil {
		return fmt.Errorf("%s: %w", component, err)
	}
	logger.Info("script finished")
	return nil
}

// applyOverride stores a flag value in the override layer when the flag was
// given on the command line.
func applyOverride(cmd *cobra.Command, store *config.Store, flag string, key config.Key, value string) error {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	if err := store.Set(key, value); err != nil {
		return fmt.Errorf("--%s: %w", flag, err)
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
