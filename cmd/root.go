// Package cmd implements the sha256digest command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/sha256digest/internal/app"
	"github.com/JakeFAU/sha256digest/internal/config"
	"github.com/JakeFAU/sha256digest/internal/digest"
	"github.com/JakeFAU/sha256digest/internal/dispatcher"
	"github.com/JakeFAU/sha256digest/internal/render"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage signals that the usage line has already been printed.
var errUsage = errors.New("usage")

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface that commands will use.
// This allows us to inject a fake app during tests.
type App interface {
	Close()
	GetConfig() config.Config
	GetLogger() *zap.Logger
	NewDispatcher(source digest.Source) *dispatcher.Dispatcher
}

// newApp is the application factory. It's a variable so tests can
// replace it.
var newApp = func(cfg config.Config) (App, error) {
	return app.NewApp(cfg)
}

// newRootCmd creates and configures the root command.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		cfgFile string
		asFiles bool
	)

	cmd := &cobra.Command{
		Use:   programName() + " <input> [... input]",
		Short: "Print the SHA-256 digest of each argument.",
		Long: `Print the SHA-256 digest of each argument as 64 lowercase hex characters,
one line per argument, in argument order. Argument bytes are hashed as given.
Use -- before messages that begin with a dash, and before a first message
named __complete or __completeNoDesc, which cobra reserves for shell completion.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},

		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintf(stderr, "Usage: %s <input> [... input]\n", programName())
				return errUsage
			}
			return nil
		},

		// Config is loaded here so that flags are parsed and bound first.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			appInstance, err := newApp(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			logger := appInstance.GetLogger()

			format, err := render.ParseFormat(appInstance.GetConfig().Digest.Output)
			if err != nil {
				return err
			}

			inputs, err := collectInputs(args, asFiles)
			if err != nil {
				logger.Error("read input failed", zap.Error(err))
				return err
			}

			results, err := appInstance.NewDispatcher(digest.SourceCLI).Run(cmd.Context(), inputs)
			if err != nil {
				logger.Error("digest failed", zap.Error(err))
				return err
			}
			return render.Write(stdout, format, results)
		},

		// This hook ensures services are shut down gracefully.
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.BoolVarP(&asFiles, "files", "f", false, "treat arguments as file paths and hash their contents")
	flags.StringP("output", "o", string(render.FormatText), "output format: text, json or table")
	flags.IntP("concurrency", "c", runtime.GOMAXPROCS(0), "number of digests computed in parallel")
	flags.Bool("dev", false, "use development logging")

	return cmd
}

// resolveApp fetches the App stored by PersistentPreRunE.
func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application not initialized")
	}
	return appInstance, nil
}

func collectInputs(args []string, asFiles bool) ([]digest.Input, error) {
	inputs := make([]digest.Input, 0, len(args))
	for _, arg := range args {
		if !asFiles {
			inputs = append(inputs, digest.Input{Label: arg, Message: []byte(arg)})
			continue
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", arg, err)
		}
		inputs = append(inputs, digest.Input{Label: arg, Message: data})
	}
	return inputs, nil
}

// run executes the root command and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		fmt.Fprintf(stderr, "%s: %v\n", programName(), err)
		return exitError
	}
}

// Execute is the main entry point.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func programName() string {
	return filepath.Base(os.Args[0])
}
