//go:build linux || darwin

package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestRlimitString(t *testing.T) {
	assert.Equal(t, "unlimited", rlimitString(unix.RLIM_INFINITY))
	assert.Equal(t, "0", rlimitString(0))
	assert.Equal(t, "4096", rlimitString(4096))
}

func TestPrepareCrashDumpsRaisesSoftLimit(t *testing.T) {
	var before unix.Rlimit
	require.NoError(t, unix.Getrlimit(unix.RLIMIT_CORE, &before))

	prepareCrashDumps(context.Background())

	var after unix.Rlimit
	require.NoError(t, unix.Getrlimit(unix.RLIMIT_CORE, &after))
	assert.Equal(t, before.Max, after.Max)
	assert.GreaterOrEqual(t, after.Cur, before.Cur)
}
