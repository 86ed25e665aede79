package app

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/botpanel/botpanel/internal/db/models"
)

var errEmptyPassword = errors.New("password cannot be empty")

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(hashCmd)
}

var hashCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print the Argon2id hash of a password",
	Long: `Print the Argon2id hash of a password, for example to reset an
account directly in the database. Without argument the password is read
from the first line of stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var password string

		if len(args) == 1 {
			password = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errEmptyPassword
			}

			password = strings.TrimRight(line, "\r\n")
		}

		if password == "" {
			return errEmptyPassword
		}

		fmt.Fprintln(cmd.OutOrStdout(), models.HashPassword(password))

		return nil
	},
}
