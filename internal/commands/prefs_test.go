package commands_test

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefs_SetGetReset(t *testing.T) {
	dir := initWallet(t)

	out, err := runWallet(t, "prefs", "get", "theme", "--wallet", dir)
	require.NoError(t, err)
	assert.Equal(t, "system", strings.TrimSpace(out))

	_, err = runWallet(t, "prefs", "set", "theme", "dark", "--wallet", dir)
	require.NoError(t, err)

	out, err = runWallet(t, "prefs", "get", "theme", "--wallet", dir)
	require.NoError(t, err)
	assert.Equal(t, "dark", strings.TrimSpace(out))

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	logOut, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(logOut), "prefs: theme")

	_, err = runWallet(t, "prefs", "reset", "--wallet", dir)
	require.NoError(t, err)
	out, err = runWallet(t, "prefs", "get", "theme", "--wallet", dir)
	require.NoError(t, err)
	assert.Equal(t, "system", strings.TrimSpace(out))
}

func TestPrefs_Invalid(t *testing.T) {
	dir := initWallet(t)

	_, err := runWallet(t, "prefs", "set", "theme", "purple", "--wallet", dir)
	assert.Error(t, err)
	_, err = runWallet(t, "prefs", "get", "nope", "--wallet", dir)
	assert.Error(t, err)
}

func TestPrefs_List(t *testing.T) {
	dir := initWallet(t)

	out, err := runWallet(t, "prefs", "list", "--wallet", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "theme=system")
	assert.Contains(t, out, "master_volume=80")
	assert.Contains(t, out, "sounds.pin-failed.enabled=")
}

func TestNotAWallet(t *testing.T) {
	out, err := runWallet(t, "prefs", "list", "--wallet", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "not a wallet")
}
