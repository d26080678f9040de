//go:build linux || darwin

package main

import (
	"context"
	"runtime/debug"
	"strconv"

	"github.com/ubytes/appplatform/internal/logging"
	"golang.org/x/sys/unix"
)

// prepareCrashDumps makes Go panics abort with a full traceback and lifts the
// soft core size limit to the hard one, so a segfault in GTK or WebKit can be
// inspected after the fact.
func prepareCrashDumps(ctx context.Context) {
	debug.SetTraceback("crash")
	log := logging.FromContext(ctx)

	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_CORE, &limit); err != nil {
		log.Debug().Err(err).Msg("core size limit unreadable")
		return
	}
	soft := limit.Cur
	if limit.Cur < limit.Max {
		limit.Cur = limit.Max
		if err := unix.Setrlimit(unix.RLIMIT_CORE, &limit); err != nil {
			log.Debug().Err(err).Msg("core size limit unchanged")
			limit.Cur = soft
		}
	}

	log.Debug().
		Str("core_soft", rlimitString(limit.Cur)).
		Str("core_hard", rlimitString(limit.Max)).
		Bool("raised", limit.Cur != soft).
		Msg("crash dumps prepared")
}

func rlimitString(value uint64) string {
	if value == unix.RLIM_INFINITY {
		return "unlimited"
	}
	return strconv.FormatUint(value, 10)
}
