package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandSet(t *testing.T) {
	cmds := newCommandSet(&WaitForDBCommand{}, &DoctorCommand{}, &MigrateCommand{})

	cmd, found := cmds.lookup("migrate")
	require.True(t, found)
	assert.Equal(t, "migrate", cmd.Name())

	_, found = cmds.lookup("deploy")
	assert.False(t, found)

	assert.Equal(t, []string{"doctor", "migrate", "wait-for-db"}, cmds.names())

	var buf bytes.Buffer
	cmds.usage(&buf)
	assert.Contains(t, buf.String(), "usage: devtool")
	assert.Contains(t, buf.String(), "wait-for-db")
}

func TestCheckArgs(t *testing.T) {
	assert.NoError(t, checkArgs("go", "version"))
	assert.NoError(t, checkArgs("postgres://u:p@host/db?sslmode=disable&x=1"))
	assert.ErrorIs(t, checkArgs("version; rm -rf /\n"), errUnsafeArg)
	assert.ErrorIs(t, checkArgs("$(whoami)"), errUnsafeArg)
	assert.ErrorIs(t, checkArgs("a | b"), errUnsafeArg)
}

func TestField(t *testing.T) {
	assert.Equal(t, "go1.24.0", field("go version go1.24.0 linux/amd64", 2))
	assert.Equal(t, "version:v3.26.0", field("goose version:v3.26.0", -1))
	assert.Equal(t, "short", field("short", 4))
}

func TestLatestMigration(t *testing.T) {
	assert.GreaterOrEqual(t, latestMigration(), int64(3))
}

func TestMigrateCommand_RequiresSubcommand(t *testing.T) {
	assert.Error(t, (&MigrateCommand{}).Run(nil))
	assert.Error(t, (&MigrateCommand{}).Run([]string{"create"}))
}
