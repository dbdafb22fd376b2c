package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/store"
)

const (
	// defaultTemplate is used by "new" when no template is named.
	defaultTemplate = "basic.json"

	// digestLen is how many hex digits of a cache digest status shows.
	digestLen = 12
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var namesOnly bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the level documents and their sync state",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, done, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer done()

			if namesOnly {
				names, err := s.ListDocuments(ctx)
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Println(n)
				}
				return nil
			}

			if _, err := s.Root(ctx); errors.Is(err, errors.ErrCodeNoRoot) {
				printWarning("No levels folder chosen")
				printNextStep("Choose one", "levelkit folder set <dir>")
			}
			docs, err := s.Overview(ctx)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				printInfo("No level documents")
				return nil
			}
			fmt.Println(renderDocuments(docs))
			printDetail("%d documents", len(docs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&namesOnly, "names", false, "print only the file names of the levels folder")
	return cmd
}

// templatesCommand creates the templates command.
func (c *CLI) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the bundled level templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			names, err := s.Templates(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
}

// newCommand creates the new command.
func (c *CLI) newCommand() *cobra.Command {
	var pull bool

	cmd := &cobra.Command{
		Use:   "new [template] <name>",
		Short: "Create a level in the levels folder from a template",
		Long: `Create a level in the levels folder from a template.

Without a template argument, basic.json is used. The new level is not
cached until it is pulled; pass --pull to do both at once.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, done, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer done()

			tmpl, name := defaultTemplate, args[0]
			if len(args) == 2 {
				tmpl, name = args[0], args[1]
			}
			if err := s.InstantiateFromTemplate(ctx, tmpl, name); err != nil {
				return err
			}
			printSuccess("Created %s", StyleHighlight.Render(name))
			printDetail("Template: %s", tmpl)

			if pull {
				return c.pull(ctx, s, name)
			}
			printNextStep("Start editing", "levelkit pull "+name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pull, "pull", false, "also copy the new level into the working cache")
	return cmd
}

// pullCommand creates the pull command.
func (c *CLI) pullCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "pull [name]",
		Short:             "Copy a level from the levels folder into the working cache",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, done, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer done()

			name, err := c.documentArg(ctx, s, args)
			if err != nil || name == "" {
				return err
			}
			return c.pull(ctx, s, name)
		},
	}
}

func (c *CLI) pull(ctx context.Context, s *store.Store, name string) error {
	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Copying "+name+"...")
	spinner.Start()
	err := s.CacheFromExternal(ctx, name)
	spinner.Stop()
	if spinner.Cancelled() {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	prog.done("pulled " + name)
	printSuccess("Pulled %s", StyleHighlight.Render(name))
	if path, err := s.Cache().Path(name); err == nil {
		printFile(path)
	}
	return nil
}

// pushCommand creates the push command.
func (c *CLI) pushCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "push [name]",
		Short:             "Export the cached copy of a level to the levels folder",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, done, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer done()

			name, err := c.documentArg(ctx, s, args)
			if err != nil || name == "" {
				return err
			}
			if err := s.Export(ctx, name); err != nil {
				return err
			}
			printSuccess("Exported %s", StyleHighlight.Render(name))
			return nil
		},
	}
}

// saveCommand creates the save command.
func (c *CLI) saveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save [name]",
		Short: "Normalize a cached level and export it to the levels folder",
		Long: `Normalize a cached level and export it to the levels folder.

The cached copy is decoded, its objects are put into the order the game
expects, and the result is written to the cache and then to the levels
folder. If the export fails the cache keeps the new content; retry with
"levelkit push".`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, done, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer done()

			name, err := c.documentArg(ctx, s, args)
			if err != nil || name == "" {
				return err
			}
			doc, err := s.Load(ctx, name)
			if err != nil {
				return err
			}
			if doc == nil {
				printError("%s is not in the working cache or cannot be read", name)
				printNextStep("Pull it first", "levelkit pull "+name)
				return errors.New(errors.ErrCodeNotFound, "%s not loaded", name)
			}

			prog := newProgress(loggerFromContext(ctx))
			if err := s.SaveAndExport(ctx, name, doc); err != nil {
				if errors.Is(err, errors.ErrCodeNoRoot) {
					printWarning("Saved to the cache only")
					printNextStep("Choose a folder and retry", "levelkit push "+name)
				}
				return err
			}
			prog.done("saved " + name)
			printSuccess("Saved %s", StyleHighlight.Render(name))
			printDetail("%d objects", len(doc.Objects))
			return nil
		},
	}
}

// copyCommand creates the copy command.
func (c *CLI) copyCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "copy <src> <dst>",
		Aliases:           []string{"cp"},
		Short:             "Duplicate a level in the levels folder",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			if err := s.Copy(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			printSuccess("Copied %s %s %s", args[0], iconArrow, StyleHighlight.Render(args[1]))
			return nil
		},
	}
}

// renameCommand creates the rename command.
func (c *CLI) renameCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "rename <old> <new>",
		Aliases:           []string{"mv"},
		Short:             "Rename a level and its cached copy",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			if err := s.Rename(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			printSuccess("Renamed %s %s %s", args[0], iconArrow, StyleHighlight.Render(args[1]))
			return nil
		},
	}
}

// deleteCommand creates the delete command.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <name>...",
		Aliases:           []string{"rm"},
		Short:             "Delete levels from the levels folder and the working cache",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			for _, name := range args {
				if err := s.Delete(cmd.Context(), name); err != nil {
					return err
				}
				printSuccess("Deleted %s", name)
			}
			return nil
		},
	}
}

// statusCommand creates the status command.
func (c *CLI) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "status <name>...",
		Short:             "Show whether levels are in sync with the working cache",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			for _, name := range args {
				st, err := s.Status(cmd.Context(), name)
				if err != nil {
					return err
				}
				printKeyValue(name, renderState(st))
				if st == store.Untracked || st == store.ExternalOnly {
					continue
				}
				if digest, err := s.Cache().Digest(name); err == nil {
					printDetail("cached sha256 %s", digest[:digestLen])
				}
			}
			return nil
		},
	}
}

// documentArg returns args[0], or lets the user pick a document when no
// name was given. An empty name means the user cancelled.
func (c *CLI) documentArg(ctx context.Context, s *store.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	docs, err := s.Overview(ctx)
	if err != nil {
		return "", err
	}
	items := make([]PickerItem, len(docs))
	for i, d := range docs {
		items[i] = PickerItem{Name: d.Name, Detail: d.State.String()}
	}
	name, err := pick("level", items)
	if err == nil && name == "" {
		printDetail("No selection made")
	}
	return name, err
}

// completeDocuments completes level names from the levels folder.
func (c *CLI) completeDocuments(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, done, err := c.newStore(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer done()

	names, err := s.ListDocuments(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// formatSize renders a byte count for tables.
func formatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
