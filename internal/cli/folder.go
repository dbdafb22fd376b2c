package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/prefs"
	"github.com/matzehuels/levelkit/pkg/storage"
)

// folderCommand creates the levels folder management command.
func (c *CLI) folderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Choose the levels folder",
	}

	cmd.AddCommand(c.folderSetCommand())
	cmd.AddCommand(c.folderShowCommand())
	cmd.AddCommand(c.folderClearCommand())

	return cmd
}

// folderSetCommand creates the "folder set" subcommand.
func (c *CLI) folderSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <dir|uri>",
		Short: "Use a directory as the levels folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, err := rootURI(args[0])
			if err != nil {
				return err
			}

			// Refuse folders that cannot be opened right now.
			t, err := storage.Open(uri)
			if err != nil {
				return err
			}
			t.Close()

			p, err := c.openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer p.Close()
			if err := p.Set(cmd.Context(), prefs.FolderKey, uri); err != nil {
				return err
			}

			printSuccess("Levels folder set")
			printDetail("Folder: %s", uri)
			return nil
		},
	}
}

// folderShowCommand creates the "folder show" subcommand.
func (c *CLI) folderShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the levels folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			uri, err := s.Root(cmd.Context())
			if errors.Is(err, errors.ErrCodeNoRoot) {
				printInfo("No levels folder chosen")
				printNextStep("Choose one", "levelkit folder set <dir>")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println(uri)
			return nil
		},
	}
}

// folderClearCommand creates the "folder clear" subcommand.
func (c *CLI) folderClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the levels folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer p.Close()
			if err := p.Delete(cmd.Context(), prefs.FolderKey); err != nil {
				return err
			}
			printSuccess("Levels folder cleared")
			return nil
		},
	}
}

// rootURI turns a command-line folder argument into the URI stored in
// preferences. URIs pass through; paths are made absolute.
func rootURI(arg string) (string, error) {
	if strings.Contains(arg, "://") {
		return arg, nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", arg)
	}
	return abs, nil
}
