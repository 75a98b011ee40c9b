package cmd

import (
	"fmt"
	"os"

	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/flytaly/scrapconv/pkg/convert"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func convertRunE(from ast.Dialect) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig(cmd)
		if err != nil {
			return err
		}
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		out, err := convert.New(cfg).Convert(text, from)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
}

var mdCmd = &cobra.Command{
	Use:   "md [file]",
	Short: "Convert Scrapbox to Markdown",
	Args:  cobra.MaximumNArgs(1),
	RunE:  convertRunE(ast.Scrapbox),
}

var sbCmd = &cobra.Command{
	Use:   "sb [file]",
	Short: "Convert Markdown to Scrapbox",
	Args:  cobra.MaximumNArgs(1),
	RunE:  convertRunE(ast.Markdown),
}

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print the syntax tree of a document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("dialect")
		var d ast.Dialect
		switch name {
		case "":
			d = ast.Scrapbox
			if len(args) > 0 {
				if guess, ok := convert.DialectOf(args[0]); ok {
					d = guess
				}
			}
		case "scrapbox", "sb":
			d = ast.Scrapbox
		case "markdown", "md":
			d = ast.Markdown
		default:
			return errors.Errorf("unknown dialect %q", name)
		}
		f, _ := cmd.Flags().GetString("format")
		format, err := ast.ParseFormat(f)
		if err != nil {
			return err
		}

		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		page, err := convert.Parse(text, d)
		if err != nil {
			return err
		}
		colored := cmd.OutOrStdout() == os.Stdout && isatty.IsTerminal(os.Stdout.Fd())
		return ast.Dump(cmd.OutOrStdout(), page, format, colored)
	},
}

func init() {
	astCmd.Flags().StringP("dialect", "d", "", "scrapbox or markdown (default: guessed from the file extension, else scrapbox)")
	astCmd.Flags().StringP("format", "f", "pretty", "pretty or yaml")
	rootCmd.AddCommand(mdCmd, sbCmd, astCmd)
}
