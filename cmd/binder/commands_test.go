package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/maelko/binder/internal/model"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points the CLI at a throwaway data directory and resets all
// command flags to their defaults.
func setupTestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BINDER_DIR", dir)
	rootDir = ""
	addFolder = ""
	listDone = false
	listPending = false
	listAll = false
	dumpRaw = false
	return dir
}

// seedStore fills the data directory with a known collection: Groceries
// holds Milk (done), Eggs, and Bread; Chores holds Vacuum; Empty is empty.
func seedStore(t *testing.T) {
	t.Helper()
	st, _, err := openStore()
	require.NoError(t, err)
	defer st.Close()

	groceries := st.AddFolder("Groceries")
	milk, _ := st.AddItem(groceries.ID, "Milk")
	st.AddItem(groceries.ID, "Eggs")
	st.AddItem(groceries.ID, "Bread")
	st.ToggleItem(groceries.ID, milk.ID)

	chores := st.AddFolder("Chores")
	st.AddItem(chores.ID, "Vacuum")

	st.AddFolder("Empty")
}

// captureStdout runs fn with stdout redirected and returns what it printed.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	os.Stdout = old

	return buf.String(), runErr
}

// currentFolders reopens the store and returns what is persisted.
func currentFolders(t *testing.T) model.Collection {
	t.Helper()
	st, _, err := openStore()
	require.NoError(t, err)
	defer st.Close()
	return st.Folders()
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
}

func TestFolderAddCommand(t *testing.T) {
	setupTestDir(t)

	out, err := captureStdout(t, func() error { return runFolderAdd(nil, []string{"Groceries"}) })
	require.NoError(t, err)
	assert.Contains(t, out, `Added folder "Groceries".`)

	folders := currentFolders(t)
	require.Len(t, folders, 1)
	assert.Equal(t, "Groceries", folders[0].Name)
	assert.NotEmpty(t, folders[0].ID)
	assert.Empty(t, folders[0].Items)
}

func TestFolderAddCommand_BlankName(t *testing.T) {
	setupTestDir(t)

	err := runFolderAdd(nil, []string{"   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
	assert.Empty(t, currentFolders(t))
}

func TestFolderRmCommand(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	// Mixed references: by name and by position, removed in one batch.
	out, err := captureStdout(t, func() error { return runFolderRm(nil, []string{"Groceries", "3"}) })
	require.NoError(t, err)
	assert.Contains(t, out, `Removed folder "Groceries".`)
	assert.Contains(t, out, `Removed folder "Empty".`)

	folders := currentFolders(t)
	require.Len(t, folders, 1)
	assert.Equal(t, "Chores", folders[0].Name)
}

func TestFolderRmCommand_UnknownRef(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	out, err := captureStdout(t, func() error { return runFolderRm(nil, []string{"Nope"}) })
	require.Error(t, err)
	assert.Contains(t, out, `folder "Nope" not found`)
	assert.Len(t, currentFolders(t), 3)
}

func TestFolderRmCommand_MixedValidAndInvalid(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	out, err := captureStdout(t, func() error { return runFolderRm(nil, []string{"Nope", "Chores"}) })
	require.NoError(t, err)
	assert.Contains(t, out, `Removed folder "Chores".`)
	assert.Contains(t, out, `folder "Nope" not found`)
	assert.Len(t, currentFolders(t), 2)
}

func TestFoldersCommand(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	out, err := captureStdout(t, func() error { return runFolders(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "1/3 done")
	assert.Contains(t, out, "Chores")
	assert.Contains(t, out, "0/1 done")
	assert.Contains(t, out, "empty")
}

func TestFoldersCommand_Empty(t *testing.T) {
	setupTestDir(t)

	out, err := captureStdout(t, func() error { return runFolders(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "No folders found.")
}

func TestAddCommand(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	addFolder = "Chores"
	out, err := captureStdout(t, func() error { return runAdd(nil, []string{"Mow lawn"}) })
	require.NoError(t, err)
	assert.Contains(t, out, `Added "Mow lawn" to Chores.`)

	items := currentFolders(t)[1].Items
	require.Len(t, items, 2)
	assert.Equal(t, "Mow lawn", items[1].Title)
	assert.False(t, items[1].Completed)
	assert.NotEmpty(t, items[1].ID)
}

func TestAddCommand_DefaultFolderFromConfig(t *testing.T) {
	dir := setupTestDir(t)
	seedStore(t)
	writeConfig(t, dir, "default_folder: Groceries\n")

	out, err := captureStdout(t, func() error { return runAdd(nil, []string{"Butter"}) })
	require.NoError(t, err)
	assert.Contains(t, out, `Added "Butter" to Groceries.`)

	items := currentFolders(t)[0].Items
	assert.Equal(t, "Butter", items[len(items)-1].Title)
}

func TestAddCommand_NoFolder(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	err := runAdd(nil, []string{"Orphan"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no folder specified")
}

func TestAddCommand_BlankTitle(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	addFolder = "Chores"
	err := runAdd(nil, []string{"  "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
	assert.Len(t, currentFolders(t)[1].Items, 1)
}

func TestAddCommand_UnknownFolder(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	addFolder = "Nope"
	err := runAdd(nil, []string{"Lost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `folder "Nope" not found`)
}

func TestListCommand_SingleFolder(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	out, err := captureStdout(t, func() error { return runList(nil, []string{"Groceries"}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "(1/3 done)")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "Eggs")
	assert.NotContains(t, out, "Vacuum")
}

func TestListCommand_AllFolders(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	out, err := captureStdout(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Vacuum")
	assert.Contains(t, out, "Empty")
	assert.Contains(t, out, "no items")
}

func TestListCommand_StatusFilters(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	listDone = true
	out, err := captureStdout(t, func() error { return runList(nil, []string{"Groceries"}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Milk")
	assert.NotContains(t, out, "Eggs")
	assert.NotContains(t, out, "Bread")

	listDone = false
	listPending = true
	out, err = captureStdout(t, func() error { return runList(nil, []string{"Groceries"}) })
	require.NoError(t, err)
	assert.NotContains(t, out, "Milk")
	assert.Contains(t, out, "Eggs")
	assert.Contains(t, out, "Bread")
}

func TestListCommand_FiltersKeepPositions(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	listPending = true
	out, err := captureStdout(t, func() error { return runList(nil, []string{"Groceries"}) })
	require.NoError(t, err)
	assert.Regexp(t, `2\s+\[ \]\s+Eggs`, out)
	assert.Regexp(t, `3\s+\[ \]\s+Bread`, out)
}

func TestListCommand_ConflictingFilters(t *testing.T) {
	setupTestDir(t)

	listDone = true
	listPending = true
	err := runList(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting filters")
}

func TestListCommand_DefaultFolderFromConfig(t *testing.T) {
	dir := setupTestDir(t)
	seedStore(t)
	writeConfig(t, dir, "default_folder: Chores\n")

	out, err := captureStdout(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "Vacuum")
	assert.NotContains(t, out, "Milk")

	// --all overrides the default folder.
	listAll = true
	out, err = captureStdout(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "Vacuum")
}

func TestDoneCommand(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	// By position: Eggs is pending, toggling marks it done.
	out, err := captureStdout(t, func() error { return runDone(nil, []string{"Groceries", "2"}) })
	require.NoError(t, err)
	assert.Contains(t, out, `"Eggs" done.`)
	assert.True(t, currentFolders(t)[0].Items[1].Completed)

	// By title: Milk was completed, so it is reopened.
	out, err = captureStdout(t, func() error { return runDone(nil, []string{"Groceries", "Milk"}) })
	require.NoError(t, err)
	assert.Contains(t, out, `"Milk" reopened.`)
	assert.False(t, currentFolders(t)[0].Items[0].Completed)
}

func TestDoneCommand_RepeatedReference(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	// Each reference sees the state left by the previous one, so toggling
	// twice lands back where it started.
	out, err := captureStdout(t, func() error { return runDone(nil, []string{"Groceries", "2", "2"}) })
	require.NoError(t, err)
	assert.Contains(t, out, `"Eggs" done.`)
	assert.Contains(t, out, `"Eggs" reopened.`)
	assert.False(t, currentFolders(t)[0].Items[1].Completed)
}

func TestDoneCommand_UnknownItem(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	out, err := captureStdout(t, func() error { return runDone(nil, []string{"Groceries", "Caviar"}) })
	require.Error(t, err)
	assert.Contains(t, out, `item "Caviar" not found`)
}

func TestDoneCommand_UnknownFolder(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	err := runDone(nil, []string{"Nope", "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `folder "Nope" not found`)
}

func TestRmCommand_BatchPositions(t *testing.T) {
	setupTestDir(t)

	st, _, err := openStore()
	require.NoError(t, err)
	letters := st.AddFolder("Letters")
	for _, title := range []string{"A", "B", "C", "D"} {
		st.AddItem(letters.ID, title)
	}
	st.Close()

	// Positions refer to the listing before removal.
	out, err := captureStdout(t, func() error { return runRm(nil, []string{"Letters", "2", "4"}) })
	require.NoError(t, err)
	assert.Contains(t, out, `Removed "B" from Letters.`)
	assert.Contains(t, out, `Removed "D" from Letters.`)

	items := currentFolders(t)[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Title)
	assert.Equal(t, "C", items[1].Title)
}

func TestRmCommand_ByTitle(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	_, err := captureStdout(t, func() error { return runRm(nil, []string{"Groceries", "Eggs"}) })
	require.NoError(t, err)

	items := currentFolders(t)[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "Milk", items[0].Title)
	assert.Equal(t, "Bread", items[1].Title)
}

func TestRmCommand_MixedValidAndInvalid(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	out, err := captureStdout(t, func() error { return runRm(nil, []string{"Groceries", "1", "99"}) })
	require.NoError(t, err)
	assert.Contains(t, out, `Removed "Milk" from Groceries.`)
	assert.Contains(t, out, `item "99" not found`)
	assert.Len(t, currentFolders(t)[0].Items, 2)
}

func TestDumpCommand(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	out, err := captureStdout(t, func() error { return runDump(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "# Groceries (1/3 done)")
	assert.Contains(t, out, "[x] Milk")
	assert.Contains(t, out, "[ ] Eggs")
	assert.Contains(t, out, "# Chores (0/1 done)")
	assert.Contains(t, out, "# Empty (0/0 done)")
}

func TestDumpCommand_Raw(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	dumpRaw = true
	out, err := captureStdout(t, func() error { return runDump(nil, nil) })
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "Groceries", decoded[0]["name"])
	assert.Contains(t, decoded[0], "id")
	assert.Contains(t, decoded[0], "items")
}

func TestDumpCommand_RawNothingStored(t *testing.T) {
	setupTestDir(t)

	dumpRaw = true
	out, err := captureStdout(t, func() error { return runDump(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing stored yet.")
}

func TestCheckCommand(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	out, err := captureStdout(t, func() error { return runCheck(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found.")
}

func TestCheckCommand_NothingStored(t *testing.T) {
	setupTestDir(t)

	out, err := captureStdout(t, func() error { return runCheck(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing stored yet.")
}

func TestCheckCommand_CorruptBlob(t *testing.T) {
	dir := setupTestDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "folders.json"), []byte("{{nope"), 0o644))

	out, err := captureStdout(t, func() error { return runCheck(nil, nil) })
	require.Error(t, err)
	assert.Contains(t, out, "not valid JSON")
	assert.Contains(t, err.Error(), "issue(s) found")
}

func TestCommands_SQLiteBackend(t *testing.T) {
	dir := setupTestDir(t)
	writeConfig(t, dir, "backend: sqlite\n")

	_, err := captureStdout(t, func() error { return runFolderAdd(nil, []string{"Groceries"}) })
	require.NoError(t, err)

	folders := currentFolders(t)
	require.Len(t, folders, 1)
	assert.Equal(t, "Groceries", folders[0].Name)

	// The blob lands in the database, not a flat file.
	_, statErr := os.Stat(filepath.Join(dir, "binder.db"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, "folders.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCompleteFolders(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	completions, directive := completeFolders(nil, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	require.Len(t, completions, 3)
	assert.Contains(t, completions[0], "Groceries")
	assert.Contains(t, completions[0], "1/3 done")

	completions, _ = completeFolders(nil, nil, "gro")
	require.Len(t, completions, 1)
	assert.Contains(t, completions[0], "Groceries")
}

func TestCompleteFolderThenItems(t *testing.T) {
	setupTestDir(t)
	seedStore(t)

	completions, _ := completeFolderThenItems(nil, []string{"Groceries"}, "")
	require.Len(t, completions, 3)
	assert.Contains(t, completions[0], "done: Milk")
	assert.Contains(t, completions[1], "pending: Eggs")
}
