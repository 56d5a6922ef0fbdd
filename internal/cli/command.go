// Package cli defines the command-line interface for filereport.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/filereport/filereport/internal/integration"
	"github.com/filereport/filereport/internal/scan"
	"github.com/filereport/filereport/internal/summary"
)

// DefaultOutput is the default workbook path.
const DefaultOutput = "filereport.xlsx"

// DefaultExcludes contains the directory names skipped by default.
//
//nolint:gochecknoglobals // Config constant
var DefaultExcludes = []string{".git", "node_modules"}

// Options holds the resolved configuration for one report run.
type Options struct {
	// Scan configures the directory walk.
	Scan scan.Options
	// Output is the workbook path to write.
	Output string
	// TopN is the number of type partitions to rank in the summary.
	TopN int
	// NoSummary omits the summary sheet and charts from the workbook.
	NoSummary bool
	// Quiet suppresses progress and the terminal preview.
	Quiet bool
}

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	return newRootCommand(c.version).Execute()
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".filereport")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("FILEREPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Println("error reading config file:", err)
		}
	}
}

// newRootCommand builds the root command with all flags bound to viper.
func newRootCommand(version string) *cobra.Command {
	cobra.OnInitialize(initConfig)

	root := &cobra.Command{
		Use:   "filereport [path]",
		Short: "Generate a spreadsheet report of the files under a directory.",
		Long: heredoc.Doc(`
			filereport walks a directory tree, collects per-file metadata and
			writes a formatted spreadsheet report.

			The workbook contains a flat file listing (path, type, size and last
			modification time) and a summary sheet with the top file types ranked
			by total size and by file count, a histogram of files by modification
			age, and a pie chart per summary table.

			Directories whose name matches an exclusion are skipped at any depth.
			Files that disappear or become unreadable during the scan are skipped;
			the scan continues.
		`),
		Example: heredoc.Doc(`
			# Report the current directory into filereport.xlsx
			filereport

			# Report a project, skipping build output
			filereport ~/src/project -e .git,node_modules,dist -o project.xlsx

			# Listing only, no summary sheet
			filereport --no-summary /data
		`),
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			if viper.GetBool("init") {
				rendered, err := integration.Render()
				if err != nil {
					return fmt.Errorf("rendering integration script: %w", err)
				}

				//nolint:forbidigo // Integration script output to console
				fmt.Println(rendered)

				return nil
			}

			options, err := resolveOptions(args)
			if err != nil {
				return err
			}

			return run(options)
		},
	}

	root.Flags().StringSliceP("exclude", "e", DefaultExcludes, "Directory names to skip at any depth")
	root.Flags().StringP("output", "o", DefaultOutput, "Path of the workbook to write")
	root.Flags().IntP("top", "t", summary.DefaultTopN, "Number of top file types to rank")
	root.Flags().String("min-size", "0KB", "Minimum file size (e.g., 1KB)")
	root.Flags().Bool("no-summary", false, "Write the file listing only, without the summary sheet")
	root.Flags().BoolP("quiet", "q", false, "Suppress progress and the terminal preview")
	root.Flags().Bool("debug", false, "Enable debug output")
	root.Flags().BoolP("init", "i", false, "Output init script for shell usage")
	root.Flags().String("config", "", "Path to config file")

	if err := viper.BindPFlags(root.Flags()); err != nil {
		fmt.Println("error binding flags:", err)
	}

	return root
}

// resolveOptions validates the viper-resolved configuration and the
// positional path argument into an Options value.
func resolveOptions(args []string) (Options, error) {
	options := Options{
		Scan: scan.Options{
			Excludes: viper.GetStringSlice("exclude"),
			Debug:    viper.GetBool("debug"),
		},
		Output:    viper.GetString("output"),
		TopN:      viper.GetInt("top"),
		NoSummary: viper.GetBool("no-summary"),
		Quiet:     viper.GetBool("quiet"),
	}

	if len(args) == 0 {
		options.Scan.Path = "."
	} else {
		options.Scan.Path = args[0]
	}

	if options.Output == "" {
		return options, errors.New("output path cannot be empty")
	}

	if options.TopN <= 0 {
		return options, errors.New("top must be positive")
	}

	if minSizeStr := viper.GetString("min-size"); minSizeStr != "" {
		size, err := humanize.ParseBytes(minSizeStr)
		if err != nil {
			return options, fmt.Errorf("invalid min-size: %w", err)
		}

		options.Scan.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
	}

	return options, nil
}
