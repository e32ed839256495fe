package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/refactorhq/java-context-graph/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize jcg configuration interactively",
	Long: `Guides you through setting up jcg configuration step by step.
Creates a config file with worker, cache, and logging settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	cfg := config.DefaultConfig()

	// === SECTION 1: Analysis ===
	workers := strconv.Itoa(cfg.Workers)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Worker goroutines per file").
				Description("0 analyzes every method concurrently").
				Placeholder("0").
				Value(&workers).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 0 {
						return fmt.Errorf("enter a number >= 0")
					}
					return nil
				}),
		),
	)
	err := form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}
	cfg.Workers, _ = strconv.Atoi(workers)

	// === SECTION 2: Cache ===
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Document cache").
				Description("Cache analysis results on disk?").
				Affirmative("Yes, cache results").
				Negative("No, analyze every time").
				Value(&cfg.CacheEnabled),
		),
	)
	err = form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	if cfg.CacheEnabled {
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Cache directory").
					Placeholder(cfg.CacheDir).
					Value(&cfg.CacheDir),
			),
		)
		err = form.Run()
		if err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
	}

	// === SECTION 3: Logging ===
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Verbose logging").
				Description("Log debug details such as cache hits?").
				Value(&cfg.Verbose),
			huh.NewConfirm().
				Title("JSON logs").
				Description("Emit one JSON object per log line?").
				Value(&cfg.JSONLogs),
		),
	)
	err = form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	// === SECTION 4: Config Location ===
	var saveLocationChoice string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Save Configuration").
				Description("Where to save the configuration file?").
				Options(
					huh.NewOption("Global (~/.jcg/config.yaml)", "global"),
					huh.NewOption("Project (./.jcg/config.yaml)", "project"),
				).
				Value(&saveLocationChoice),
		),
	)
	err = form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	path := config.GlobalConfigPath()
	if saveLocationChoice == "project" {
		path = config.ProjectConfigPath()
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("Configuration saved to %s\n", path)
	fmt.Printf("  workers:        %d\n", cfg.Workers)
	fmt.Printf("  cache_enabled:  %t\n", cfg.CacheEnabled)
	if cfg.CacheEnabled {
		fmt.Printf("  cache_dir:      %s\n", cfg.CacheDir)
	}
	fmt.Printf("  verbose:        %t\n", cfg.Verbose)
	fmt.Printf("  json_logs:      %t\n", cfg.JSONLogs)
	return nil
}
