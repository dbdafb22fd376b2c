package cli

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/levelkit/pkg/catalog"
	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/level"
	"github.com/matzehuels/levelkit/pkg/rtid"
)

// refsCommand creates the refs command.
func (c *CLI) refsCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "refs [name]",
		Short: "Check the references in a cached level",
		Long: `Check the references in a cached level.

Every RTID in every object is resolved: CurrentLevel references against the
aliases defined in the level, other sources against the built-in catalogs
and the catalog given with --catalog. References to sources without a
catalog are listed as unresolved but do not count as broken.

The command fails when at least one reference is broken.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, done, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer done()

			cats, err := c.catalogs()
			if err != nil {
				return err
			}

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

			findings, err := level.NewResolver(cats).Check(doc)
			if err != nil {
				return err
			}
			broken, unchecked := splitBroken(cats, level.Broken(findings))

			shown := findings
			if !all {
				shown = broken
			}
			if len(shown) > 0 {
				fmt.Println(renderFindings(shown))
			}

			if unchecked > 0 {
				printInfo("%d references point into sources without a catalog", unchecked)
			}
			if len(broken) == 0 {
				printSuccess("%d references, none broken", len(findings))
				return nil
			}
			printError("%d of %d references are broken", len(broken), len(findings))
			return errors.New(errors.ErrCodeInvalidReference, "%s has %d broken references", name, len(broken))
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "show resolved references too")
	return cmd
}

// splitBroken separates references that are known to be broken from those
// whose source has no catalog to check against.
func splitBroken(cats catalog.Set, unresolved []level.Finding) (broken []level.Finding, unchecked int) {
	for _, f := range unresolved {
		if f.Parsed && !f.Ref.IsLocal() {
			if _, ok := cats[f.Ref.Source]; !ok {
				unchecked++
				continue
			}
		}
		broken = append(broken, f)
	}
	return broken, unchecked
}

// catalogCommand creates the catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [source] [query]",
		Short: "Search the catalogs references can point into",
		Long: `Search the catalogs references can point into.

Without arguments the available sources are listed. With a source, its
items matching the optional query are shown.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := c.catalogs()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				sources := make([]string, 0, len(cats))
				for src := range cats {
					sources = append(sources, string(src))
				}
				slices.Sort(sources)
				for _, src := range sources {
					fmt.Println(src)
				}
				return nil
			}

			source := rtid.Source(args[0])
			cat, ok := cats[source]
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "no catalog for %s", source)
			}
			searchable, ok := cat.(catalog.Searchable)
			if !ok {
				return errors.New(errors.ErrCodeUnsupported, "catalog %s cannot be listed", source)
			}
			query := ""
			if len(args) == 2 {
				query = args[1]
			}

			items := searchable.Search(query)
			if len(items) == 0 {
				printInfo("No items match %q", query)
				return nil
			}
			fmt.Println(renderItems(source, cat, items))
			printDetail("%d items", len(items))
			return nil
		},
	}
}

// renderItems renders catalog items with the reference that points at them.
func renderItems(source rtid.Source, cat catalog.Catalog, items []catalog.Item) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		ref, err := rtid.Build(it.TypeName, source)
		if err != nil {
			ref = it.TypeName
		}
		icon, _ := cat.IconPath(it.TypeName)
		rows = append(rows, []string{it.Name, string(it.Category), ref, icon})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Category", "Reference", "Icon").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return StyleValue
			}
			return StyleDim
		}).
		Render()
}
