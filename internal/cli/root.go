package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/levelkit/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Levelkit manages tower-defense level documents",
		Long: `Levelkit keeps level documents in sync between a levels folder and a
private working cache, and checks the references between level objects.

Choose the folder once with "levelkit folder set <dir>", then pull a level
into the cache, edit it, and save it back with "levelkit save".`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "preferences file or redis:// URL (default $XDG_CONFIG_HOME/levelkit/prefs.toml)")
	flags.StringVar(&c.cacheDir, "cache-dir", "", "working cache directory (default $XDG_CACHE_HOME/levelkit/levels)")
	flags.StringVar(&c.catalogPath, "catalog", "", "extra TOML catalog for reference checks")
	flags.StringVar(&c.templateDir, "templates", "", "directory of level templates (default: bundled templates)")

	// Register all subcommands
	root.AddCommand(c.folderCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.pullCommand())
	root.AddCommand(c.pushCommand())
	root.AddCommand(c.saveCommand())
	root.AddCommand(c.copyCommand())
	root.AddCommand(c.renameCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.refsCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
