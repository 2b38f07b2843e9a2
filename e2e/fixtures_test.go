//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates a temporary directory for fixtures, config
// and the log file
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateOutline writes an outline document into the workspace
func (tf *TUITestFramework) CreateOutline(name, content string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	p := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		return "", err
	}
	return p, nil
}

// CreateTree creates files and directories under dir in the workspace.
// Entries ending in a slash are directories.
func (tf *TUITestFramework) CreateTree(dir string, entries ...string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	root := filepath.Join(tf.workspace, dir)
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", err
	}
	for _, e := range entries {
		p := filepath.Join(root, e)
		if strings.HasSuffix(e, "/") {
			if err := os.MkdirAll(p, 0755); err != nil {
				return "", err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return "", err
		}
		if err := os.WriteFile(p, []byte(e), 0644); err != nil {
			return "", err
		}
	}
	return root, nil
}

const sampleOutline = `title = "Sample"

[[item]]
label = "docs"

  [[item.item]]
  label = "readme"
  description = "start here"

  [[item.item]]
  label = "changelog"

[[item]]
label = "main"

[[item]]
label = "notes"
`
