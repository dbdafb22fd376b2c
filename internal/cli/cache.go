package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/store"
)

// cacheCommand creates the working cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the working cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached working copy",
		Long: `Remove every cached working copy.

Cached copies that were never exported are lost. Without --force the
command refuses to run while such copies exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, done, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer done()

			if !force {
				docs, err := s.Overview(ctx)
				if err != nil {
					return err
				}
				var unsynced []string
				for _, d := range docs {
					if d.State == store.CacheOnly || d.State == store.Cached {
						unsynced = append(unsynced, d.Name)
					}
				}
				if len(unsynced) > 0 {
					for _, name := range unsynced {
						printWarning("%s has unexported changes", name)
					}
					printNextStep("Export them, or discard them", "levelkit cache clear --force")
					return errors.New(errors.ErrCodeInvalidInput, "%d cached levels not exported", len(unsynced))
				}
			}

			count, err := s.Cache().Clear()
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached levels", count)
			printDetail("Directory: %s", s.Cache().Root())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "discard unexported changes")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the working cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cd, err := c.openCache()
			if err != nil {
				return err
			}
			fmt.Println(cd.Root())
			return nil
		},
	}
}
