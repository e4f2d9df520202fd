// Package cli provides the switchscan commands.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"switchscan/internal/config"
)

const rootLongDescription = `switchscan scans a virtual keyboard the way a switch-access service scans
a screen: by rows and keys, by a sweeping cursor or by a rotating radar line.
One or two keys act as switches; everything else is picked by timing.`

type flagError struct{ err error }

func (e flagError) Error() string { return e.err.Error() }

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Switch-access scanning engine with a terminal demo host",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return flagError{err: err}
	})

	configureRootFlags(cmd)
	cmd.AddCommand(newRunCmd(), newConfigCmd(), newLogCmd(), newVersionCmd())
	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(configFlagName, viper.GetString(configPathKey), "engine config file (TOML)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(configFlagName), configPathKey)

	cmd.PersistentFlags().String(logFileFlagName, viper.GetString(logFilenameKey), `log file, "-" for stderr`)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().String(logLevelFlagName, viper.GetString(logLevelKey), "log level: debug, info, warn, error")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logLevelFlagName), logLevelKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// configService returns the service for --config, or the default location
func configService() config.ConfigService {
	if path := viper.GetString(configPathKey); path != "" {
		return config.NewConfigServiceAt(path)
	}
	return config.NewConfigService()
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		var fe flagError
		if errors.As(err, &fe) {
			fmt.Fprintln(os.Stderr, err)
			_ = cmd.Usage()
			os.Exit(2)
		}
		slog.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
