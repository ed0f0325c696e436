package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"skytools/astro"
	"skytools/internal/app"
	"skytools/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer
// a.Close(). operation identifies the CLI command being run (e.g.
// "RiseSet", "ImportCatalog").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "skytools",
	Short: "Convenience tools for observation planning and build scripts",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:     %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Catalog Type: %s\n", cfg.Catalog.Type)
		if cfg.Catalog.ObservatoriesPath != "" {
			fmt.Printf("Observatories: %s\n", cfg.Catalog.ObservatoriesPath)
		}
		if cfg.Catalog.AliasesPath != "" {
			fmt.Printf("Aliases:      %s\n", cfg.Catalog.AliasesPath)
		}
		if cfg.Catalog.Type == "sqlite" {
			fmt.Printf("Database:     %s\n", cfg.DatabasePath())
		}
		return nil
	},
}

// catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the observatory catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import catalog data into the sqlite store",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		a, err := newApp("ImportCatalog")
		if err != nil {
			return err
		}
		defer a.Close()

		count, skipped, err := a.ImportCatalog(force)
		if err != nil {
			return fmt.Errorf("importing catalog: %w", err)
		}
		if skipped {
			fmt.Printf("Catalog up to date (%d observatories)\n", count)
		} else {
			fmt.Printf("Imported %d observatories\n", count)
		}
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known observatories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListObservatories")
		if err != nil {
			return err
		}
		defer a.Close()

		observatories, err := a.ListObservatories()
		if err != nil {
			return err
		}
		for _, obs := range observatories {
			fmt.Printf("%-12s %s\n", obs.Name, strings.Join(obs.Aliases, " "))
		}
		return nil
	},
}

// observatory command
var observatoryCmd = &cobra.Command{
	Use:   "observatory NAME",
	Short: "Show an observatory's location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ObservatoryLocation")
		if err != nil {
			return err
		}
		defer a.Close()

		loc, err := a.ObservatoryLocation(args[0])
		if err != nil {
			return err
		}

		lat, lon, h := loc.Geodetic()
		fmt.Printf("Geocentric: X=%.3f Y=%.3f Z=%.3f m\n", loc.X, loc.Y, loc.Z)
		fmt.Printf("Geodetic:   lat=%.5f deg lon=%.5f deg height=%.0f m\n", lat.Deg(), lon.Deg(), h)
		return nil
	},
}

// risenset command
var risensetCmd = &cobra.Command{
	Use:   "risenset SOURCE OBSERVATORY",
	Short: "Compute rise and set times for a source",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mjd, _ := cmd.Flags().GetFloat64("mjd")
		lst, _ := cmd.Flags().GetBool("lst")

		var elevationLimit *float64
		if cmd.Flags().Changed("elevation-limit") {
			v, _ := cmd.Flags().GetFloat64("elevation-limit")
			elevationLimit = &v
		}

		when := time.Now()
		if cmd.Flags().Changed("mjd") {
			when = astro.MJDToTime(mjd)
		}

		a, err := newApp("RiseSet")
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.RiseSet(args[0], args[1], when, elevationLimit)
		if err != nil {
			return err
		}

		if lst {
			rise, set, err := res.Times.Sidereal(res.Location)
			if err != nil {
				return fmt.Errorf("formatting sidereal times: %w", err)
			}
			fmt.Printf("Rise:\t%s\n", rise)
			fmt.Printf("Set:\t%s\n", set)
			return nil
		}

		fmt.Printf("Rise:\t%s\n", res.Times.Rise.UTC().Format("2006-01-02 15:04:05"))
		fmt.Printf("Set:\t%s\n", res.Times.Set.UTC().Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// catalog subcommands
	catalogCmd.AddCommand(catalogImportCmd)
	catalogImportCmd.Flags().BoolP("force", "f", false, "Import even if the store looks up to date")
	catalogCmd.AddCommand(catalogListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(observatoryCmd)
	rootCmd.AddCommand(risensetCmd)
	risensetCmd.Flags().Float64("mjd", 0, "MJD when the rise and set are wanted (default now)")
	risensetCmd.Flags().Float64("elevation-limit", 0, "Elevation in degrees at which the source rises and sets")
	risensetCmd.Flags().Bool("lst", false, "Give results as local sidereal times")
}
