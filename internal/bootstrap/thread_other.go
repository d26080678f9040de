//go:build !linux

package bootstrap

// currentThreadID is unsupported here; every call looks like the UI thread.
func currentThreadID() int {
	return 0
}
