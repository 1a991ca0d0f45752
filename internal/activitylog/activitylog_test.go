package activitylog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mywallet-dev/mywallet/internal/model"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:  testTime,
		FlowID:     "0b7e4c1a-5f7e-4f55-9a39-6a1c2c1e2f10",
		Action:     ActionImport,
		Domains:    []model.Domain{model.DomainTransactions, model.DomainGoals},
		Details:    "imported 2 domains from mywallet-selective-backup-2025-01-14.json",
		CommitHash: "abc1234",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, testEntry())
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, ActionImport, entries[0].Action)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, testEntry()))

	e2 := testEntry()
	e2.Action = ActionExport
	e2.Domains = nil
	require.NoError(t, Append(dir, e2))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, ActionImport, entries[0].Action)
	assert.Equal(t, ActionExport, entries[1].Action)
	assert.Nil(t, entries[1].Domains)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, original))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, original.FlowID, got.FlowID)
	assert.Equal(t, original.Action, got.Action)
	assert.Equal(t, original.Domains, got.Domains)
	assert.Equal(t, original.Details, got.Details)
	assert.Equal(t, original.CommitHash, got.CommitHash)
}

func TestRead_NotFound(t *testing.T) {
	dir := t.TempDir()
	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(Path(dir), []byte(strings.Join(Columns, ",")+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_ForeignHeader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(Path(dir), []byte("a,b,c,d,e,f\n"), 0o644))

	_, err := Read(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected header")
}

func TestAppend_HeaderWrittenOnce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, testEntry(), testEntry()))
	require.NoError(t, Append(dir, testEntry()))

	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,flow_id"))
	assert.Equal(t, 4, strings.Count(string(data), "\n"))
}

func TestEntry_Row(t *testing.T) {
	row := testEntry().Row()
	assert.Len(t, row, 6)
	assert.Equal(t, "2025-01-15T10:30:00Z", row[0])
	assert.Equal(t, "transactions;goals", row[3])
}

func TestParseRow_Errors(t *testing.T) {
	_, err := ParseRow([]string{"one", "two"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "want 6 columns")

	row := testEntry().Row()
	row[3] = "transactions;wallets"
	_, err = ParseRow(row)
	assert.Error(t, err)

	row = testEntry().Row()
	row[0] = "yesterday"
	_, err = ParseRow(row)
	assert.Error(t, err)
}

func TestAppend_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, testEntry())
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
