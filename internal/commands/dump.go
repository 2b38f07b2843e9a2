package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"treenav/internal/discovery"
	"treenav/internal/domain"
	"treenav/internal/engine"
)

// DumpOptions controls which rows dump prints
type DumpOptions struct {
	Expand       bool
	Depth        int
	SelectedOnly bool
	NoColor      bool
}

func addDump(topLevel *cobra.Command) {
	so := &SourceOptions{}
	do := &DumpOptions{}

	cmd := &cobra.Command{
		Use:   "dump [path]",
		Short: "Print the visible rows of a tree as a table.",
		Example: `
treenav dump notes.toml
treenav dump --expand --depth 2 ~/src
treenav dump --selected notes.toml
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				so.Path = args[0]
			}
			if err := so.fromRoot(cmd); err != nil {
				return err
			}
			_, cfg, err := so.load(nil)
			if err != nil {
				return err
			}
			src, err := discovery.NewDiscoveryService(nil, cfg).Open(so.Path)
			if err != nil {
				return err
			}
			if do.NoColor {
				color.NoColor = true
			}
			return Dump(cmd.OutOrStdout(), src.Provider, *do)
		},
	}

	cmd.Flags().BoolVarP(&do.Expand, "expand", "e", false,
		"Open every container before printing.")
	cmd.Flags().IntVar(&do.Depth, "depth", 0,
		"With --expand, only open containers above this depth (0 for no limit).")
	cmd.Flags().BoolVar(&do.SelectedOnly, "selected", false,
		"Only print selected rows.")
	cmd.Flags().BoolVar(&do.NoColor, "no-color", false,
		"Disable colour output.")

	topLevel.AddCommand(cmd)
}

// fromRoot copies the flags parsed by the root command into so
func (so *SourceOptions) fromRoot(cmd *cobra.Command) error {
	root := cmd.Root()
	if root == cmd {
		return nil
	}
	var err error
	if so.ConfigPath, err = root.PersistentFlags().GetString("config"); err != nil {
		return fmt.Errorf("failed to read --config: %w", err)
	}
	if so.ShowHidden, err = root.PersistentFlags().GetBool("all"); err != nil {
		return fmt.Errorf("failed to read --all: %w", err)
	}
	return nil
}

// Dump walks the visible rows of p in display order and prints them as a
// table. With Expand, containers are opened on the way down.
func Dump(w io.Writer, p domain.Provider, opts DumpOptions) error {
	e := engine.New(p)
	labeler, _ := p.(domain.Labeler)
	describer, _ := p.(domain.Describer)
	selector, _ := p.(domain.Selector)
	enabler, _ := p.(domain.Enabler)
	expander, _ := p.(domain.Expander)

	header := color.New(color.Bold, color.Underline)
	container := color.New(color.FgBlue, color.Bold)
	disabled := color.New(color.Faint)
	selected := color.New(color.FgGreen)
	dim := color.New(color.Faint, color.Italic)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(header.Sprint("PATH"), header.Sprint("ITEM"), header.Sprint("SEL"), header.Sprint("DESCRIPTION"))

	rows := 0
	c := e.Cursor(engine.Current)
	n, err := e.GotoTop(c)
	for n != nil && err == nil {
		isContainer := e.IsContainer(c)
		if opts.Expand && isContainer && expander != nil && (opts.Depth == 0 || c.Depth() < opts.Depth) {
			expander.SetOpen(n, true)
		}

		isSelected := selector != nil && selector.IsSelected(n)
		if !opts.SelectedOnly || isSelected {
			label := ""
			if labeler != nil {
				label = labeler.Label(n)
			}
			marker := "  "
			if isContainer {
				marker = "▶ "
				if p.IsOpen(n) {
					marker = "▼ "
				}
			}
			item := strings.Repeat("  ", c.Depth()) + marker
			switch {
			case enabler != nil && !enabler.IsEnabled(n):
				item += disabled.Sprint(label)
			case isContainer:
				item += container.Sprint(label)
			default:
				item += label
			}

			sel := ""
			if isSelected {
				sel = selected.Sprint("x")
			}
			desc := ""
			if describer != nil {
				desc = dim.Sprint(describer.Description(n))
			}
			tbl.AddRow(c.Path().String(), item, sel, desc)
			rows++
		}
		n, err = e.NextVisible(c)
	}
	if err != nil {
		return fmt.Errorf("failed to walk tree: %w", err)
	}

	if rows == 0 {
		_, err := fmt.Fprintln(w, dim.Sprint("none"))
		return err
	}
	_, err = fmt.Fprintln(w, tbl)
	return err
}
