//go:build linux

package bootstrap

import "golang.org/x/sys/unix"

func currentThreadID() int {
	return unix.Gettid()
}
