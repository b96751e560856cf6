package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/kevinburke/ssh_config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kalgynirae/netlaborious/internal/config"
	"github.com/kalgynirae/netlaborious/internal/errors"
	"github.com/kalgynirae/netlaborious/internal/ui"
)

var initForce bool

// initCmd creates a new .netlab.yaml configuration.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .netlab.yaml configuration",
	Long: `Initialize a new netlab configuration file.

Creates a .netlab.yaml file in the current directory with connection and
upload defaults, guided by interactive prompts. Hosts defined in
~/.ssh/config are offered in a picker.

Examples:
  netlab init
  netlab init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(initForce)
	},
}

func initConfig(force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// Offer hosts from ~/.ssh/config when there are any to offer.
	var vsHost string
	if hosts := sshConfigHosts(); len(hosts) > 0 && ui.IsTerminalFile(os.Stdin) {
		selected, err := ui.PickHost(hosts)
		if err == nil && selected != nil {
			vsHost = selected.Name
		}
	}

	var vsUser, portStr, folder, network string
	provisioning := "thin"
	portStr = "22"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("vSphere management host").
				Description("Hostname, user@host, or SSH config alias").
				Placeholder("vcenter.lab or alice@vcenter.lab").
				Value(&vsHost).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("management host is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("vSphere username").
				Placeholder("alice").
				Value(&vsUser),
			huh.NewInput().
				Title("Management port").
				Value(&portStr).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := strconv.Atoi(s); err != nil {
						return fmt.Errorf("port must be a number")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default upload folder").
				Description("Inventory folder new VMs land in (optional)").
				Placeholder("TestFolder").
				Value(&folder),
			huh.NewInput().
				Title("Default network mapping").
				Placeholder("SAFETY NET").
				Value(&network),
			huh.NewSelect[string]().
				Title("Default provisioning").
				Options(
					huh.NewOption("thin", "thin"),
					huh.NewOption("thick", "thick"),
				).
				Value(&provisioning),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility")
	}

	cfg := config.DefaultConfig()
	cfg.VSphere.Host = vsHost
	cfg.VSphere.User = vsUser
	if portStr != "" {
		cfg.VSphere.Port, _ = strconv.Atoi(portStr)
	}
	cfg.Upload.Folder = folder
	cfg.Upload.Network = network
	cfg.Upload.Provisioning = provisioning

	if err := config.Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# netlab configuration
# Run 'netlab run -- <command>' for a single action
# or 'netlab batch <file>' for a batch of them.

`
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), configPath)
	fmt.Println("Next steps:")
	fmt.Println(ui.MutedStyle().Render("  netlab run -- listvms          - check the connection"))
	fmt.Println(ui.MutedStyle().Render("  netlab batch provision.netlab  - run a batch file"))

	return nil
}

// sshConfigHosts lists the concrete Host aliases from ~/.ssh/config.
// Wildcard patterns are skipped.
func sshConfigHosts() []ui.HostInfo {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	content, err := os.ReadFile(filepath.Join(home, ".ssh", "config"))
	if err != nil {
		return nil
	}
	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return nil
	}

	var hosts []ui.HostInfo
	for _, host := range cfg.Hosts {
		for _, pattern := range host.Patterns {
			alias := pattern.String()
			if strings.ContainsAny(alias, "*?!") {
				continue
			}
			info := ui.HostInfo{Name: alias}
			if addr, _ := cfg.Get(alias, "HostName"); addr != "" {
				info.Addr = addr
			}
			if user, _ := cfg.Get(alias, "User"); user != "" {
				info.User = user
			}
			hosts = append(hosts, info)
		}
	}
	return hosts
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}
