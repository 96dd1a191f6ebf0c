package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glossa/internal/app"
	"glossa/internal/config"
	"glossa/internal/inputprocessor"
)

var rootCmd = &cobra.Command{
	Use:   "glossa",
	Short: "Glossa text annotation CLI",
	Long: `Glossa identifies the language of a text and annotates it with lexical
classes, named entities and sentiment scores using a pluggable language
model provider.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appInstance, err := app.NewApp(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appInstance, err := GetAppFromContext(cmd.Context()); err == nil {
			appInstance.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type contextKey string

const appKey contextKey = "app"

// GetAppFromContext retrieves the app instance stored by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

// readInput resolves the positional arg, --file flag or stdin into text.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	proc := inputprocessor.New()
	file, _ := cmd.Flags().GetString("file")
	switch {
	case file != "":
		return proc.Process(cmd.Context(), file)
	case len(args) > 0:
		return proc.Process(cmd.Context(), args[0])
	default:
		return proc.Process(cmd.Context(), "-")
	}
}
