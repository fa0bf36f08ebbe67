package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/goobj/internal/config"
	"github.com/philipparndt/goobj/internal/logger"
	"github.com/philipparndt/goobj/pkg/model"
	"github.com/philipparndt/goobj/pkg/obj"
	"github.com/philipparndt/goobj/version"
	"github.com/spf13/cobra"
)

// cfg is the effective configuration, loaded before any subcommand runs
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "goobj",
	Short: "Inspect, measure and transform Wavefront OBJ models",
	Long: `goobj loads the geometry of Wavefront OBJ files into flat vertex and
edge buffers. It reports dimensions and edge statistics, applies move, rotate
and scale edits with 4x4 matrices, and can follow a file while it is edited.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded
		return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	config.BindFlags(rootCmd.PersistentFlags())
}

func parserOptions() []obj.Option {
	return []obj.Option{obj.WithExtraCoords(cfg.Parser.ExtraCoords)}
}

func newModel() *model.Model {
	return model.New(
		model.WithParserOptions(parserOptions()...),
		model.WithNormalize(cfg.View.Normalize),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
