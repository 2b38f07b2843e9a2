package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treenav/internal/domain"
	"treenav/internal/outline"
)

func init() {
	color.NoColor = true
}

func sampleTree() *outline.Tree {
	return outline.New(
		outline.Branch("docs", false,
			outline.Leaf("readme").WithDescription("start here"),
			outline.Branch("guides", false,
				outline.Leaf("install"),
			),
		),
		outline.Leaf("main"),
		outline.Leaf("old").Disable(),
	)
}

func TestDumpVisibleRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, sampleTree(), DumpOptions{}))

	out := buf.String()
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "▶ docs")
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "old")
	assert.NotContains(t, out, "readme")
}

func TestDumpExpand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, sampleTree(), DumpOptions{Expand: true}))

	out := buf.String()
	assert.Contains(t, out, "▼ docs")
	assert.Contains(t, out, "start here")
	assert.Contains(t, out, "install")
	assert.Contains(t, out, "0.1.0")
}

func TestDumpExpandDepth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, sampleTree(), DumpOptions{Expand: true, Depth: 1}))

	out := buf.String()
	assert.Contains(t, out, "readme")
	assert.Contains(t, out, "▶ guides")
	assert.NotContains(t, out, "install")
}

func TestDumpSelectedOnly(t *testing.T) {
	tree := sampleTree()
	main, err := tree.Item(domain.Path{1})
	require.NoError(t, err)
	main.Selected = true

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, tree, DumpOptions{SelectedOnly: true}))

	out := buf.String()
	assert.Contains(t, out, "main")
	assert.NotContains(t, out, "docs")
}

func TestDumpNothingSelected(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, sampleTree(), DumpOptions{SelectedOnly: true}))
	assert.Equal(t, "none\n", buf.String())
}

func TestDumpCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.toml")

	var doc bytes.Buffer
	require.NoError(t, sampleTree().Encode(&doc, "Notes"))
	require.NoError(t, os.WriteFile(file, doc.Bytes(), 0644))

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"dump", "--config", filepath.Join(dir, "config.toml"), "--expand", file})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "install")
	assert.Contains(t, out.String(), "start here")
}

func TestDumpCommandMissingSource(t *testing.T) {
	dir := t.TempDir()

	cmd := New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"dump", "--config", filepath.Join(dir, "config.toml"), filepath.Join(dir, "nope.toml")})
	assert.Error(t, cmd.Execute())
}

func TestDumpCommandRootFlagMismatch(t *testing.T) {
	root := &cobra.Command{Use: "other", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().Bool("config", false, "")
	addDump(root)
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"dump", t.TempDir()})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--config")
}

func TestBadSelectMode(t *testing.T) {
	so := &SourceOptions{
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		SelectMode: "several",
	}
	_, _, err := so.load(nil)
	assert.Error(t, err)
}
