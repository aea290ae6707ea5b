package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	klog "k8s.io/klog/v2"
	yaml "sigs.k8s.io/yaml"

	"github.com/sttts/dashnav/internal/history"
	"github.com/sttts/dashnav/internal/shell"
	"github.com/sttts/dashnav/internal/ui"
	"github.com/sttts/dashnav/pkg/appconfig"
	"github.com/sttts/dashnav/pkg/navigation"
	"github.com/sttts/dashnav/pkg/preferences"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	klog.InitFlags(nil)
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		help        = flag.Bool("help", false, "Show help information")
		configPath  = flag.String("config", "", "Config file (default ~/.dashnav/config.yaml)")
		startPath   = flag.String("path", "", "Location to open (default shell.startPath)")
		resolve     = flag.String("resolve", "", "Resolve a location, print the panel as YAML and exit")
		ephemeral   = flag.Bool("ephemeral", false, "Keep preferences in memory only")
	)

	flag.Parse()
	defer klog.Flush()

	if *help {
		showHelp()
		return
	}

	if *showVersion {
		showVersionInfo()
		return
	}

	ctx := context.Background()
	logger := klog.Background()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		// defaults are usable, keep going
		logger.Error(err, "failed to load config, using defaults")
	}
	if *ephemeral {
		cfg.Preferences.Backend = appconfig.BackendMemory
	}
	store, err := preferences.NewStore(cfg.Preferences)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *resolve != "" {
		if err := resolveOnce(ctx, os.Stdout, cfg, store, *resolve); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	save := appconfig.Save
	if *configPath != "" {
		save = func(c *appconfig.Config) error { return appconfig.SaveTo(*configPath, c) }
	}
	if err := ui.Run(ctx, ui.Options{
		Config:     cfg,
		Store:      store,
		StartPath:  *startPath,
		Logger:     logger,
		SaveConfig: save,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(p string) (*appconfig.Config, error) {
	if p == "" {
		return appconfig.Load()
	}
	return appconfig.LoadFrom(p)
}

// resolveOnce runs a single startup resolution against path and prints the
// resulting state and panel.
func resolveOnce(ctx context.Context, w io.Writer, cfg *appconfig.Config, store preferences.Store, path string) error {
	fallback, _ := navigation.ParseAppID(cfg.Shell.FallbackApp)
	prefs := preferences.New(store,
		preferences.WithLogger(klog.Background().WithName("preferences")),
		preferences.WithFallbackApp(fallback),
	)
	ctrl, err := shell.New(ctx, shell.Options{
		Preferences: prefs,
		Location:    history.New(path),
		Logger:      klog.Background().WithName("shell"),
	})
	if err != nil {
		return err
	}
	out := struct {
		Path  string                     `json:"path"`
		State navigation.State           `json:"state"`
		Panel navigation.PanelDescriptor `json:"panel"`
	}{
		Path:  navigation.CleanPath(path),
		State: ctrl.State(),
		Panel: ctrl.Panel(),
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func showHelp() {
	fmt.Println("dashnav - dashboard navigation shell")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  dashnav [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -config      Config file (default ~/.dashnav/config.yaml)")
	fmt.Println("  -path        Location to open, e.g. /dashboard/billing")
	fmt.Println("  -resolve     Print the panel for a location and exit")
	fmt.Println("  -ephemeral   Keep preferences in memory only")
	fmt.Println("  -v           klog verbosity")
	fmt.Println("  -version     Show version information")
	fmt.Println("  -help        Show this help message")
	fmt.Println()
	fmt.Println("Key Bindings:")
	fmt.Println("  Tab         Next app")
	fmt.Println("  Shift+Tab   Previous app")
	fmt.Println("  ↑/↓         Move in the sidebar")
	fmt.Println("  Enter       Open nav item")
	fmt.Println("  [ / ]       Back / forward")
	fmt.Println("  u           Up from a detail view")
	fmt.Println("  g           Go to a location")
	fmt.Println("  d           Make the active app the default")
	fmt.Println("  t           Choose highlighting theme")
	fmt.Println("  PgUp/PgDn   Scroll panel")
	fmt.Println("  q, F10      Quit")
}

func showVersionInfo() {
	fmt.Printf("dashnav version %s\n", version)
	fmt.Printf("Commit: %s\n", commit)
	fmt.Printf("Date: %s\n", date)
}
