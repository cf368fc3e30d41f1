package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redhat-et/xbot-nango/pkg/nango"
)

var showToken bool

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Fetch the connection's OAuth2 token",
	Long:  `Look up the OAuth2 token Nango stores for this connection and print it.`,
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().BoolVar(&showToken, "show-token", false, "Print the access token unmasked")
}

func runToken(cmd *cobra.Command, args []string) error {
	res, err := fetchConnectionToken(cmd.Context())
	if err != nil {
		return err
	}
	res.log.Success("Token fetched", "provider_config_key", res.key)
	printToken(cmd.OutOrStdout(), res.token, showToken)
	return nil
}

func printToken(w io.Writer, tok *nango.Token, reveal bool) {
	access := nango.MaskSecret(tok.AccessToken)
	if reveal {
		access = tok.AccessToken
	}
	expires := "unknown"
	if d, ok := tok.ExpiresAfter(); ok {
		expires = d.String()
	}

	fmt.Fprintf(w, "token_type:   %s\n", tok.TokenType)
	fmt.Fprintf(w, "access_token: %s\n", access)
	fmt.Fprintf(w, "expires_in:   %s\n", expires)
	fmt.Fprintf(w, "scopes:       %s\n", strings.Join(tok.Scopes().Sorted(), ", "))
}
