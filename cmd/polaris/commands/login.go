package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/fivetwenty-io/polaris/pkg/polarisclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		apiToken    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Polaris",
		Long:  "Verify a Polaris API token against an endpoint and store both in the CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get API endpoint
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API endpoint: ")
				apiEndpoint, _ = reader.ReadString('\n')
				apiEndpoint = strings.TrimSpace(apiEndpoint)
			}

			if apiEndpoint == "" {
				return polaris.ErrAPIEndpointRequired
			}

			// Get API token without echoing it
			if apiToken == "" {
				apiToken = viper.GetString("token")
			}

			if apiToken == "" {
				fmt.Print("API token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				apiToken = strings.TrimSpace(string(byteToken))

				fmt.Println()
			}

			if apiToken == "" {
				return polaris.ErrAPITokenRequired
			}

			client, err := polarisclient.New(&polaris.Config{
				APIEndpoint: apiEndpoint,
				APIToken:    apiToken,
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the token by forcing a JWT exchange
			ctx := context.Background()

			_, err = client.Authenticate(ctx)
			if err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			config := loadConfig()
			config.API = apiEndpoint
			config.Token = apiToken

			if err := saveConfig(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, "Token verified and stored in configuration")

			return nil
		},
	}

	cmd.Flags().StringVar(&apiEndpoint, "api", "", "Polaris API endpoint URL")
	cmd.Flags().StringVar(&apiToken, "api-token", "", "Polaris API token (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Polaris",
		Long:  "Remove the stored API token from the CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if config.Token == "" {
				_, _ = fmt.Fprintln(os.Stdout, "No token stored")

				return nil
			}

			config.Token = ""

			if err := saveConfig(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, "Token removed from configuration")

			return nil
		},
	}
}
