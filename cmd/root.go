package cmd

import (
	"io"
	"os"

	"github.com/flytaly/scrapconv/pkg/config"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

// getConfig loads the config file given by --config and applies flags on top.
func getConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("heading1") {
		cfg.Heading1Mapping, _ = flags.GetInt("heading1")
	}
	if flags.Changed("bold-to-heading") {
		cfg.BoldToHeading, _ = flags.GetBool("bold-to-heading")
	}
	if flags.Changed("indent") {
		s, _ := flags.GetString("indent")
		indent, err := config.ParseIndent(s)
		if err != nil {
			return cfg, err
		}
		cfg.Indent = indent
	}
	return cfg, cfg.Validate()
}

// readInput reads the file named by the first argument or stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	return string(data), err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scrapconv",
	Short: "Convert notes between Scrapbox and Markdown",
	Long: `Convert notes between Scrapbox and Markdown

Use 'md' and 'sb' to convert a single file or stdin.
Use 'watch' to keep Markdown copies of Scrapbox exports in a directory.

Internally, watcher polls the filesystem, so don't use it inside the root directory of the filesystem or in the folders with large number of files.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(version string) {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		color.Fprintf(os.Stderr, "<red>Error:</> %s\n", err)
		os.Exit(1)
	}
}

func addConfigFlags(c *cobra.Command) {
	flags := c.PersistentFlags()
	flags.StringP("config", "c", "", "path to a YAML config file")
	flags.Int("heading1", config.Default().Heading1Mapping, "Scrapbox heading level that becomes a Markdown h1")
	flags.Bool("bold-to-heading", false, "turn lines that are entirely bold into headings")
	flags.String("indent", "2", "Markdown list indent: number of spaces or 'tab'")
}

func init() {
	addConfigFlags(rootCmd)
	rootCmd.PersistentFlags().StringP("path", "p", "", "path to the watched directory (default is the working directory)")
	rootCmd.PersistentFlags().StringP("log", "l", "", "path to the log file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "write debug messages to the log")
}
