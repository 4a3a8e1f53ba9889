package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nithronos/tools/pixelsec/internal/app"
	"nithronos/tools/pixelsec/internal/bridge"
	"nithronos/tools/pixelsec/internal/config"
	"nithronos/tools/pixelsec/internal/device"
	"nithronos/tools/pixelsec/internal/gate"
	"nithronos/tools/pixelsec/internal/logging"
	"nithronos/tools/pixelsec/internal/metrics"
	"nithronos/tools/pixelsec/internal/present"
	"nithronos/tools/pixelsec/internal/probe"
	"nithronos/tools/pixelsec/internal/shell"
)

// cliEnv holds the process streams and the bridge constructor so tests can
// run the command tree without a real adb.
type cliEnv struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	newBridge func(cfg config.Config, log zerolog.Logger, rec *metrics.Recorder) bridge.Bridge
}

func defaultEnv() *cliEnv {
	return &cliEnv{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		newBridge: func(cfg config.Config, log zerolog.Logger, rec *metrics.Recorder) bridge.Bridge {
			return bridge.NewADB(cfg.ADBPath, shell.Exec{Timeout: cfg.Timeout}, log, rec)
		},
	}
}

func newRootCmd(env *cliEnv) *cobra.Command {
	var (
		list, info, dump, bypass bool
		serial, key, cfgFile     string
	)

	cmd := &cobra.Command{
		Use:   "pixelsec",
		Short: "Pixel security status and key-gated diagnostics",
		Long: `pixelsec lists attached Pixel devices over adb, reports their bootloader,
verified boot and secure element state, and gates privileged diagnostics
behind an authorization key.`,
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(cmd.Flags(), cfgFile)
			if err != nil {
				return fatal(err)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return fatal(err)
			}
			req := app.Request{
				Action:    app.SelectAction(list, info, dump, bypass),
				Serial:    serial,
				Key:       key,
				PromptKey: cfg.PromptKey,
			}
			return run(cmd, env, cfg, req)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&list, "list", "l", false, "list connected Pixel devices")
	f.BoolVarP(&info, "info", "i", false, "show device security info")
	f.BoolVarP(&dump, "dump", "d", false, "dump secure element state (requires key)")
	f.BoolVarP(&bypass, "bypass", "b", false, "verified boot bypass (requires key)")
	f.StringVarP(&serial, "serial", "s", "", "target device serial")
	f.StringVarP(&key, "key", "k", "", "authorization key, 64 hex characters")
	f.StringVar(&cfgFile, "config", "", "optional YAML config file")
	config.RegisterFlags(f)

	cmd.SetIn(env.stdin)
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	cmd.AddCommand(newSealCmd(env), newVersionCmd(env))
	return cmd
}

func run(cmd *cobra.Command, env *cliEnv, cfg config.Config, req app.Request) (err error) {
	log, _ := logging.New(env.stderr, cfg.LogLevel, false, cfg.NoColor || !isTerminal(env.stderr))
	rec := metrics.New(version)
	defer func() {
		if xerr := rec.Export(cfg.MetricsFile, env.stdout); xerr != nil {
			log.Warn().Err(xerr).Str("path", cfg.MetricsFile).Msg("metrics export failed")
		}
	}()
	log.Debug().Str("action", req.Action.String()).Str("adb", cfg.ADBPath).Msg("starting run")

	payload := gate.DefaultPayload()
	if cfg.PayloadPath != "" {
		if payload, err = gate.LoadPayload(cfg.PayloadPath); err != nil {
			return fatal(err)
		}
	}

	runner := &app.Runner{
		Bridge:     env.newBridge(cfg, log, rec),
		Family:     device.Pixel,
		Payload:    payload,
		Presenter:  present.New(env.stdout, cfg.JSON, cfg.NoColor),
		Log:        log,
		Metrics:    rec,
		Operations: app.DefaultOperations(),
	}
	if !cfg.JSON && isTerminal(env.stderr) {
		bar := progressbar.NewOptions(probe.Queries,
			progressbar.OptionSetWriter(env.stderr),
			progressbar.OptionSetDescription("Probing device"),
			progressbar.OptionClearOnFinish(),
		)
		runner.OnQuery = func(string) { _ = bar.Add(1) }
	}
	if cfg.PromptKey && isTerminal(env.stdin) {
		runner.Prompter = app.SurveyPrompter{}
	}

	if err := runner.Run(cmd.Context(), req); err != nil {
		log.Debug().Err(err).Msg("run failed")
		return fatal(err)
	}
	return nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
