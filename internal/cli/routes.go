package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/pinyin-game/internal/route"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the page route table",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, e := range route.Table() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", e.Path, e.View)
		}
	},
}

var routesResolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Show which view a path maps to",
	Long: `Show which view a path maps to. Matching is exact: "/game/" and
"/game?x=1" are not "/game".

Example:
  pinyin-game routes resolve /game`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), route.Resolve(args[0]))
	},
}

func init() {
	routesCmd.AddCommand(routesResolveCmd)
	rootCmd.AddCommand(routesCmd)
}
