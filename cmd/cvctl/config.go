package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyServer = "server"
	keyToken  = "token"
)

// CLIConfig is the persisted cvctl state.
type CLIConfig struct {
	Server string `mapstructure:"server"`
	Token  string `mapstructure:"token"`
}

var cliConfig CLIConfig

func configPath() (string, error) {
	if p := os.Getenv("CVCTL_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cvctl", "config.yaml"), nil
}

// initConfig loads the config file, creating it on first use.
func initConfig() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(defaultConfig), 0o600); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("CVCTL")
	viper.AutomaticEnv()
	viper.SetDefault(keyServer, "http://localhost:8080")
	viper.SetDefault(keyToken, "")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := viper.Unmarshal(&cliConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

const defaultConfig = `# cvctl configuration
server: http://localhost:8080

# Session token, written by "cvctl login" (keep this file private)
token: ""
`

// saveToken persists the session token; it is the client's session hook.
func saveToken(token string) {
	viper.Set(keyToken, token)
	if err := viper.WriteConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save session: %v\n", err)
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cvctl configuration",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		fmt.Println(titleStyle.Render("Configuration"))
		printField("Config File:", path)
		printField("Server:", viper.GetString(keyServer))
		if viper.GetString(keyToken) != "" {
			printField("Session:", "signed in")
		} else {
			printField("Session:", "signed out")
		}
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:     "set KEY VALUE",
	Short:   "Update a configuration value",
	Example: `  cvctl config set server https://cv.example.com`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !slices.Contains([]string{keyServer}, key) {
			return fmt.Errorf("invalid key %q: must be %q", key, keyServer)
		}
		viper.Set(key, value)
		if err := viper.WriteConfig(); err != nil {
			return fmt.Errorf("error updating config: %w", err)
		}
		fmt.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd, setConfigCmd)
}
