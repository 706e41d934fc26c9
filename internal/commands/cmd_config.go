package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/stride/pkg/iojson"
	"github.com/urfave/cli/v3"
)

const configTemplate = `# stride configuration
#
# max_iterations bounds how many execution attempts a single run may make.
max_iterations: 10

# thinking_depth is the number of reasoning steps requested from the planner.
thinking_depth: 3

# interactive gates every execution behind terminal prompts.
interactive: false

# auto_approve lets non-interactive runs approve execution automatically.
auto_approve: true

# guidance_cadence asks for plan guidance every Nth iteration.
guidance_cadence: 3

# input_retry_limit bounds re-prompting when input validation fails.
input_retry_limit: 3

timeouts:
  gate: 30s
  input: 60s

planner:
  model: gpt-4o-mini
  # base_url: https://api.openai.com/v1
  # api_key: read from OPENAI_API_KEY when unset

log:
  level: warn
  # file: /path/to/stride.log
`

// ConfigCmd implements the stride config command group.
type ConfigCmd struct {
	flags  *Flags
	force  bool
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "init",
				Usage:       "Write a commented default config file",
				UsageText:   "stride config init [--force]",
				Description: "Writes the default configuration with comments to the config path. Asks before overwriting an existing file.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "force",
						Usage:       "overwrite without asking",
						Destination: &cmd.force,
					},
				},
				Action: cmd.runInit,
			},
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "stride config validate [options]",
				Description: "Validates the configuration file, checking value ranges and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runInit(_ context.Context, c *cli.Command) error {
	path := cmd.flags.ConfigPath

	if _, err := os.Stat(path); err == nil && !cmd.force {
		overwrite := false
		confirm := huh.NewConfirm().
			Title(fmt.Sprintf("Config file %s exists. Overwrite?", path)).
			Value(&overwrite)
		if err := confirm.Run(); err != nil || !overwrite {
			fmt.Fprintln(c.Root().Writer, "Aborted.")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Config written to %s\n", path)
	return nil
}

func (cmd *ConfigCmd) runValidate(_ context.Context, c *cli.Command) error {
	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)
	warnings := cmd.flags.Config.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool     `json:"valid"`
			Error    string   `json:"error,omitempty"`
			Warnings []string `json:"warnings,omitempty"`
		}{Valid: err == nil}
		if err != nil {
			out.Error = err.Error()
		}
		for _, w := range warnings {
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %s", w.Category, w.Message))
		}

		if werr := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); werr != nil {
			return werr
		}
	} else {
		for _, w := range warnings {
			fmt.Fprintf(c.Root().Writer, "warning: %s: %s\n", w.Category, w.Message)
		}
		if err != nil {
			fmt.Fprintf(c.Root().Writer, "invalid: %s\n", err)
		} else {
			fmt.Fprintln(c.Root().Writer, "Configuration is valid")
		}
	}

	if err != nil {
		return cli.Exit("", 1)
	}
	return nil
}
