// Command templee renders record files through templee templates.
//
// Usage:
//
//	templee render -d people.yaml -t '<li>#{name}</li>' -w '<ul>' -s where:age -s 'is:>30'
//	templee query  -d people.json -s sortby:name -s slice:0:5
//	templee version
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/elclanrs/templee"
	"github.com/elclanrs/templee/pkg/query"
)

var (
	// Global flags
	verbose bool

	// Query flags shared by render and query
	dataFile string
	steps    []string

	// Render flags
	templateText string
	templateFile string
	wrapTag      string

	// Query flags
	indent bool

	// Logger
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "templee",
	Short: "templee - query record files and render them through placeholder templates",
	Long: `templee loads a JSON or YAML file holding a list of records, narrows it
with query steps and expands a template once per remaining record.

Template placeholders:
  #{path}                  value at a dotted path
  @{open={path}close}      open+item+close for each item of a sequence
  @[path]{text={sub}text}  values of the mapping at path

Query steps (--step, applied in order):
  where:PATH  and:PATH  is:COND  sortby:PATH  reverse  slice:A[:B]  eq:N`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			return nil
		}
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the templee version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), templee.Version())
	},
}

// queryOptions returns the collection options for the current flags. With
// --verbose the library traces go to stderr through slog.
func queryOptions() []query.Option {
	if !verbose {
		return nil
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return []query.Option{
		query.WithDebug(true),
		query.WithLogger(slog.New(handler)),
	}
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "records file (.json, .yaml, .yml)")
	cmd.Flags().StringArrayVarP(&steps, "step", "s", nil, "query step, repeatable (e.g. where:age, is:>30)")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	addQueryFlags(renderCmd)
	renderCmd.Flags().StringVarP(&templateText, "template", "t", "", "template text")
	renderCmd.Flags().StringVarP(&templateFile, "template-file", "f", "", "file holding the template")
	renderCmd.Flags().StringVarP(&wrapTag, "wrap", "w", "", "opening tag wrapped around the output (e.g. '<ul class=\"x\">')")

	addQueryFlags(queryCmd)
	queryCmd.Flags().BoolVar(&indent, "indent", false, "indent the JSON output")

	rootCmd.AddCommand(renderCmd, queryCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
