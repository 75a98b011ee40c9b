package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	syncer "github.com/flytaly/scrapconv/cmd/syncher"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func getProgramConfig(cmd *cobra.Command) (syncer.ProgramCfg, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return syncer.ProgramCfg{}, err
	}
	logPath, _ := cmd.Flags().GetString("log")
	verbose, _ := cmd.Flags().GetBool("verbose")
	interval, _ := cmd.Flags().GetDuration("interval")
	root, _ := cmd.Flags().GetString("path")
	maxSizeInKb, _ := cmd.Flags().GetInt64("size")
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return syncer.ProgramCfg{}, err
		}
	}
	if root, err = filepath.Abs(root); err != nil {
		return syncer.ProgramCfg{}, err
	}
	return syncer.ProgramCfg{
		Interval:    interval,
		LogPath:     logPath,
		Root:        root,
		MaxFileSize: maxSizeInKb * 1024,
		Config:      cfg,
		Verbose:     verbose,
	}, nil
}

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep Markdown copies of the Scrapbox files in a directory",
	Long: `Convert every Scrapbox file (*.sb, *.scrapbox) in the directory to a Markdown
file next to it, then watch for changes.

When the output is not a terminal the program runs without the interface and
prints its log. Use --interval 0 to convert once and exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getProgramConfig(cmd)
		if err != nil {
			return err
		}
		if !isatty.IsTerminal(os.Stdout.Fd()) || cfg.Interval <= 0 {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return syncer.RunHeadless(ctx, cfg)
		}
		p, err := syncer.NewProgram(cfg)
		if err != nil {
			return err
		}
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationP("interval", "i", 500*time.Millisecond, "poll interval duration (e.g. 1s, 500ms...)")
	watchCmd.Flags().Int64("size", 1024, "maximum file size in KB")
}
