package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const keyringService = "rinth"
const keyringUser = "modrinth"

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored Modrinth API token",
}

var authLoginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Store a Modrinth API token in the system keyring",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			fmt.Print("Modrinth API token: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				fmt.Printf("Failed to read token: %v\n", err)
				os.Exit(1)
			}
			token = strings.TrimSpace(line)
		}
		if token == "" {
			fmt.Println("No token given.")
			os.Exit(1)
		}

		if err := keyring.Set(keyringService, keyringUser, token); err != nil {
			fmt.Printf("Failed to store token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Token stored in the system keyring.")
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored Modrinth API token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := keyring.Delete(keyringService, keyringUser); err != nil {
			fmt.Printf("Failed to remove token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Token removed.")
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the user the stored token belongs to",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		if client.Token == "" {
			fmt.Println("No token stored; use 'rinth auth login' first.")
			os.Exit(1)
		}
		user, err := client.GetCurrentUser()
		if err != nil {
			fmt.Printf("Failed to look up user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Logged in as %s", user.Username())
		if user.Model.Email != nil {
			fmt.Printf(" (%s)", *user.Model.Email)
		}
		fmt.Println()
	},
}

// getAuthToken returns the token to send with API requests: the RINTH_TOKEN
// environment variable (or config value) wins over the keyring.
func getAuthToken() string {
	if token := viper.GetString("token"); token != "" {
		return token
	}
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return ""
	}
	return token
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
}
