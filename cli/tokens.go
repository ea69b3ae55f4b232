package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprintertech/sprinter-gateway/intent"
	"github.com/sprintertech/sprinter-gateway/tokens"
)

var (
	tokensPath string

	tokensCMD = &cobra.Command{
		Use:   "tokens",
		Short: "List supported tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := tokens.LoadRegistry(tokensPath)
			if err != nil {
				return err
			}

			for _, t := range registry.Tokens() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s %d\n", t.Symbol, t.Address.Hex(), t.Decimals)
			}
			return nil
		},
	}

	parseCMD = &cobra.Command{
		Use:   "parse [request]",
		Short: "Parse a free-text request and print the resulting intent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := tokens.LoadRegistry(tokensPath)
			if err != nil {
				return err
			}

			i := intent.NewParser(registry).Parse(strings.Join(args, " "))
			data, err := json.MarshalIndent(i, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			fmt.Fprintln(cmd.OutOrStdout(), intent.Preview(i))
			return nil
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{tokensCMD, parseCMD} {
		c.Flags().StringVar(&tokensPath, "tokens", "", "Path to a token table file, defaults to the built-in Base tokens")
	}
}
