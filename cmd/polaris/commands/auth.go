package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewAuthCommand creates the auth command group.
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect authentication state",
		Long:  "Inspect the token sources in effect and exchange the API token for a JWT",
	}

	cmd.AddCommand(newAuthStatusCommand())
	cmd.AddCommand(newAuthJWTCommand())

	return cmd
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show token sources",
		Long:  "Show which of the flag, environment, and config file token sources are set",
		RunE: func(cmd *cobra.Command, args []string) error {
			flagSet := rootTokenFlagChanged(cmd)
			_, envSet := os.LookupEnv("POLARIS_TOKEN")
			configSet := viper.InConfig("token")

			type authStatus struct {
				Flag   bool `json:"flag"   yaml:"flag"`
				Env    bool `json:"env"    yaml:"env"`
				Config bool `json:"config" yaml:"config"`
			}

			status := authStatus{Flag: flagSet, Env: envSet, Config: configSet}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(status)
			case OutputFormatYAML:
				return StandardYAMLRenderer(status)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Source", "Set")
				_ = table.Append("--token flag", boolWord(status.Flag))
				_ = table.Append("POLARIS_TOKEN", boolWord(status.Env))
				_ = table.Append("config file", boolWord(status.Config))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newAuthJWTCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "jwt",
		Short: "Print a fresh JWT",
		Long:  "Exchange the configured API token for a JWT and print it, for use with curl and scripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			jwt, err := client.Authenticate(context.Background())
			if err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, jwt)

			return nil
		},
	}
}

// rootTokenFlagChanged checks the persistent --token flag on the root
// command, which cmd.Flags() does not see from a subcommand.
func rootTokenFlagChanged(cmd *cobra.Command) bool {
	flag := cmd.Root().PersistentFlags().Lookup("token")

	return flag != nil && flag.Changed
}

func boolWord(set bool) string {
	if set {
		return "set"
	}

	return "not set"
}
