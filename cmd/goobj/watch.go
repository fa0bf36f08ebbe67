package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/goobj/internal/logger"
	"github.com/philipparndt/goobj/pkg/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Reload an OBJ file whenever it changes",
	Long: `Load a model and keep it in sync with the file on disk. Every change is
re-parsed; a broken save is reported and the previous model is kept. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	live := model.NewLive(newModel())
	if err := live.Load(args[0]); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	report := func() {
		data := live.Snapshot()
		fmt.Fprintf(out, "%s: %d vertices, %d edges\n", live.Path(), data.VertexCount(), data.EdgeCount())
	}

	err := live.Watch(ctx, cfg.Watch.Debounce, func(err error) {
		if err != nil {
			fmt.Fprintf(out, "reload failed, keeping previous model: %v\n", err)
			return
		}
		report()
	})
	if err != nil {
		return err
	}

	report()
	logger.Info("watching for changes", zap.String("path", live.Path()), zap.Duration("debounce", cfg.Watch.Debounce))

	<-ctx.Done()
	return live.Close()
}
