package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/addrbook/configs"
	"github.com/Aman-CERP/addrbook/internal/config"
	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/output"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage addrbook configuration.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/addrbook/config.yaml)
  3. Project config (.addrbook.yaml in the current directory)
  4. Environment variables (ADDRBOOK_*)`,
		Example: `  # Create user config from template
  addrbook config init

  # Show effective configuration
  addrbook config show

  # Print user config file path
  addrbook config path`,
	}

	cmd.AddCommand(newConfigInitCmd(opts))
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd(opts *globalOptions) *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file from the template",
		Long: `Create the user configuration file at ~/.config/addrbook/config.yaml
(or $XDG_CONFIG_HOME/addrbook/config.yaml), or with --project a .addrbook.yaml
in the current directory.

An existing user config is left alone unless --force is given; it is then
backed up to config.yaml.bak.<timestamp> (the newest 3 backups are kept).`,
		Example: `  addrbook config init
  addrbook config init --force
  addrbook config init --project`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := opts.writer(cmd)
			if project {
				return runConfigInitProject(out, force)
			}
			return runConfigInit(out, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file (user config is backed up first)")
	cmd.Flags().BoolVar(&project, "project", false, "Create .addrbook.yaml in the current directory")

	return cmd
}

func runConfigInit(out *output.Writer, force bool) error {
	configPath := config.GetUserConfigPath()

	var backupPath string
	if config.UserConfigExists() {
		if !force {
			out.Warning("User configuration already exists")
			out.Statusf("📁", "Location: %s", configPath)
			out.Status("💡", "Use --force to replace it with the template (a backup is kept)")
			return nil
		}
		var err error
		backupPath, err = config.BackupUserConfig()
		if err != nil {
			return errors.ConfigError("failed to back up user config", err).WithDetail("path", configPath)
		}
	}

	if err := os.MkdirAll(config.GetUserConfigDir(), 0755); err != nil {
		return errors.ConfigError("failed to create config directory", err).
			WithDetail("path", config.GetUserConfigDir())
	}
	if err := os.WriteFile(configPath, []byte(configs.UserConfigTemplate), 0644); err != nil {
		return errors.ConfigError("failed to write config file", err).WithDetail("path", configPath)
	}

	out.Success("Created user configuration")
	out.Statusf("📁", "Location: %s", configPath)
	if backupPath != "" {
		out.Statusf("💾", "Backup: %s", backupPath)
	}
	out.Status("📋", "Run 'addrbook config show' to verify")
	return nil
}

func runConfigInitProject(out *output.Writer, force bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.InternalError("cannot determine working directory", err)
	}
	path := filepath.Join(wd, config.ProjectConfigYAML)

	if _, err := os.Stat(path); err == nil && !force {
		out.Warning("Project configuration already exists")
		out.Statusf("📁", "Location: %s", path)
		out.Status("💡", "Use --force to overwrite it")
		return nil
	}

	if err := os.WriteFile(path, []byte(configs.ProjectConfigTemplate), 0644); err != nil {
		return errors.ConfigError("failed to write project config", err).WithDetail("path", path)
	}
	out.Success("Created project configuration")
	out.Statusf("📁", "Location: %s", path)
	return nil
}

func newConfigShowCmd(opts *globalOptions) *cobra.Command {
	var (
		jsonOutput bool
		source     string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the configuration after merging all sources, or a single source
with --source.`,
		Example: `  addrbook config show
  addrbook config show --json
  addrbook config show --source user`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, opts, jsonOutput || opts.outputFormat() == output.FormatJSON, source)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&source, "source", "merged", "Config source: merged, user, project, defaults")

	return cmd
}

func runConfigShow(cmd *cobra.Command, opts *globalOptions, jsonOutput bool, source string) error {
	out := opts.writer(cmd)

	var (
		cfg        *config.Config
		sourceDesc string
	)
	switch source {
	case "merged", "":
		cfg = opts.settings()
		sourceDesc = "merged (defaults + user + project + env)"

	case "user":
		userCfg, err := config.LoadUserConfig()
		if err != nil {
			return err
		}
		if userCfg == nil {
			out.Warning("No user configuration file found")
			out.Statusf("📁", "Expected at: %s", config.GetUserConfigPath())
			out.Status("💡", "Run 'addrbook config init' to create one")
			return nil
		}
		cfg = userCfg
		sourceDesc = fmt.Sprintf("user (%s)", config.GetUserConfigPath())

	case "project":
		wd, err := os.Getwd()
		if err != nil {
			return errors.InternalError("cannot determine working directory", err)
		}
		path := config.ProjectConfigPath(wd)
		if path == "" {
			out.Warning("No project configuration file found")
			out.Statusf("📁", "Expected at: %s", filepath.Join(wd, config.ProjectConfigYAML))
			out.Status("💡", "Run 'addrbook config init --project' to create one")
			return nil
		}
		projectCfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		cfg = projectCfg
		sourceDesc = fmt.Sprintf("project (%s)", path)

	case "defaults":
		cfg = config.NewConfig()
		sourceDesc = "defaults (hardcoded)"

	default:
		return errors.ValidationError(fmt.Sprintf("invalid source: %s (use: merged, user, project, defaults)", source), nil)
	}

	if jsonOutput {
		return out.JSON(cfg)
	}

	out.Statusf("📋", "Configuration source: %s", sourceDesc)
	out.Newline()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.InternalError("failed to marshal config", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}
