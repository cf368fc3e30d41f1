package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/redhat-et/xbot-nango/pkg/logger"
	"github.com/redhat-et/xbot-nango/pkg/nango"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "Report granted scopes against the default required set",
	Long: `Fetch the connection's token and list its granted scopes next to the
default required X scopes. Missing scopes are reported, never enforced.`,
	RunE: runScopes,
}

func init() {
	rootCmd.AddCommand(scopesCmd)
}

func runScopes(cmd *cobra.Command, args []string) error {
	res, err := fetchConnectionToken(cmd.Context())
	if err != nil {
		return err
	}

	log := logger.New(logger.ComponentScopeCheck)
	missing := printScopeReport(cmd.OutOrStdout(), res.token.Scopes(), nango.DefaultRequiredScopes())
	if len(missing) > 0 {
		log.Warn("Connection lacks default required scopes",
			"provider_config_key", res.key, "missing", missing)
		return nil
	}
	log.Scope("All default required scopes granted", "provider_config_key", res.key)
	return nil
}

// printScopeReport writes one line per scope and returns the missing required ones
func printScopeReport(w io.Writer, granted, required nango.ScopeSet) []string {
	fmt.Fprintln(w, "granted:")
	for _, s := range granted.Sorted() {
		marker := " "
		if required.Has(s) {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %s\n", marker, s)
	}

	missing := granted.Missing(required)
	fmt.Fprintln(w, "missing required:")
	if len(missing) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, s := range missing {
		fmt.Fprintf(w, "    %s\n", s)
	}
	return missing
}
