//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchRevealsMatch(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	outline, err := tf.CreateOutline("notes.toml", sampleOutline)
	require.NoError(t, err, "Failed to write outline")

	require.NoError(t, tf.StartApp(outline), "Failed to start app")
	require.True(t, tf.Ready(), "Should render the first frame")

	// changelog sits under the closed docs container
	tf.Search("change")
	require.True(t, tf.SeePlain("changelog"), "Search should open the match's ancestors")
	require.True(t, tf.SeePlain("(1/1)"), "Should show the match counter")
}

func TestActionMenu(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	outline, err := tf.CreateOutline("notes.toml", sampleOutline)
	require.NoError(t, err, "Failed to write outline")

	require.NoError(t, tf.StartApp(outline), "Failed to start app")
	require.True(t, tf.Ready(), "Should render the first frame")

	tf.OpenMenu()
	require.True(t, tf.SeePlain("Open / close"), "Menu should be posted")
	require.True(t, tf.SeePlain("Selection mode"), "Menu should list submenus")

	// pick Open / close on docs
	tf.Enter()
	require.True(t, tf.SeePlain("readme"), "Picking the entry should open docs")
}
