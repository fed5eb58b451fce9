package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nigeltao/tagwm/internal/config"
	"github.com/nigeltao/tagwm/internal/util"
	"github.com/nigeltao/tagwm/internal/wm"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TAGWM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "tagwm",
		Short: "A dynamic tiling window manager for X11",
		Long: `tagwm manages the windows of an X11 display. Windows carry tags; each
monitor shows the windows whose tags it has selected, arranged by a tiling,
monocle or floating layout.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := loadOptions(v)
			opts.log.Debugf("starting with %s", opts)
			return run(opts)
		},
	}
	pf := root.PersistentFlags()
	pf.String("config", config.DefaultPath(), "path to the YAML configuration")
	pf.String("display", "", "X display to manage (default $DISPLAY)")
	pf.String("log-level", "info", "log level (debug|info|warn|error)")
	bindFlags(v, pf)

	root.AddCommand(
		newCheckConfigCmd(v),
		newDumpConfigCmd(v),
		newVersionCmd(),
	)
	return root
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			panic(err)
		}
	})
}

func loadOptions(v *viper.Viper) options {
	return options{
		configPath: v.GetString("config"),
		display:    v.GetString("display"),
		log:        util.NewLogger(util.ParseLogLevel(v.GetString("log-level"))),
	}
}

func newCheckConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configuration and its bindings, then exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := loadOptions(v)
			cfg, _, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("%s: %w", opts.configPath, err)
			}
			if err := wm.CheckBindings(cfg); err != nil {
				return fmt.Errorf("%s: %w", opts.configPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", opts.configPath)
			return nil
		},
	}
}

func newDumpConfigCmd(v *viper.Viper) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "dump-config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if !defaults {
				var err error
				path := loadOptions(v).configPath
				if cfg, _, err = config.Load(path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the built-in configuration instead")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tagwm",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tagwm %s\n", version)
		},
	}
}
