package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/cyberdesk"
	"github.com/aretw0/cyberdesk/internal/config"
	"github.com/aretw0/cyberdesk/internal/presentation/tui"
	"github.com/aretw0/cyberdesk/pkg/observability"
	"github.com/aretw0/cyberdesk/pkg/runner"
	"github.com/aretw0/lifecycle"
	"golang.org/x/term"
)

// RunOptions selects how the interactive session talks to the officer.
type RunOptions struct {
	JSON  bool
	Plain bool
}

// RunSession runs one interactive intake on stdin/stdout until exit, EOF or a signal.
func RunSession(cfg config.Config, opts RunOptions) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}

	sigCtx := lifecycle.NewSignalContext(context.Background())
	defer sigCtx.Stop()
	defer sigCtx.Cancel()

	desk, err := OpenDesk(sigCtx, cfg, logger, observability.LogHooks(logger))
	if err != nil {
		return err
	}
	defer desk.Close()

	in := runner.ResolveInputReader(os.Stdin)
	mode := ModeInteractive
	var handler InteractiveHandler
	if opts.JSON {
		mode = ModeJSON
		handler = runner.NewJSONHandler(in, os.Stdout)
	} else {
		var textOpts []runner.TextHandlerOption
		if !opts.Plain && term.IsTerminal(int(os.Stdout.Fd())) {
			tui.PrintBanner(os.Stdout, "Cyber-crime complaint intake "+cyberdesk.Version)
			textOpts = append(textOpts, runner.WithRenderer(tui.NewRenderer(100)))
		}
		handler = runner.NewTextHandler(in, os.Stdout, textOpts...)
	}

	runErr := RunInteractive(sigCtx, desk, handler, in, mode, logger)

	state := desk.Snapshot()
	logger.Info("Session finished", "case_id", state.CaseID, "node", state.CurrentNodeID, "reason", sigCtx.Reason(), "signal", sigCtx.Signal())

	if !opts.JSON && sigCtx.Signal() == os.Interrupt {
		fmt.Println("[CTRL+C]")
	}
	return handleExecutionError(runErr)
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

// handleExecutionError turns interruptions into a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
