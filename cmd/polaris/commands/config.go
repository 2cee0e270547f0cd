package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/polaris/internal/constants"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/fivetwenty-io/polaris/pkg/polarisclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration persisted at
// ~/.polaris/config.yml. The API token lands here at login; anyone
// preferring not to store it on disk can pass --token or POLARIS_TOKEN
// instead.
type Config struct {
	API    string `json:"api,omitempty"   yaml:"api,omitempty"`
	Token  string `json:"token,omitempty" yaml:"token,omitempty"`
	Output string `json:"output"          yaml:"output"`
}

// loadConfig assembles the effective configuration from viper (flags, env,
// config file, in that precedence).
func loadConfig() *Config {
	return &Config{
		API:    viper.GetString("api"),
		Token:  viper.GetString("token"),
		Output: viper.GetString("output"),
	}
}

// saveConfig writes the configuration to the config file in use, creating
// ~/.polaris/config.yml when none is.
func saveConfig(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".polaris")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The token lives in this file, hence the restrictive mode.
	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateClient builds a polaris.Client from the effective configuration.
func CreateClient() (polaris.Client, error) {
	config := loadConfig()

	clientConfig := &polaris.Config{
		APIEndpoint: config.API,
		APIToken:    config.Token,
	}

	if viper.GetBool("verbose") {
		clientConfig.Debug = true
		clientConfig.Logger = verboseLogger{}
	}

	client, err := polarisclient.New(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage Polaris CLI configuration including endpoint and output settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			// Never echo the token itself
			token := "not set"
			if config.Token != "" {
				token = "***"
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(map[string]string{
					"api":    config.API,
					"token":  token,
					"output": config.Output,
				})
			case OutputFormatYAML:
				return StandardYAMLRenderer(map[string]string{
					"api":    config.API,
					"token":  token,
					"output": config.Output,
				})
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Setting", "Value")
				_ = table.Append("api", config.API)
				_ = table.Append("token", token)
				_ = table.Append("output", config.Output)

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value (api, token, output) and persist it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			switch key {
			case "api":
				config.API = value
			case "token":
				config.Token = value
			case "output":
				config.Output = value
			default:
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			if err := saveConfig(config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", key)

			return nil
		},
	}
}
