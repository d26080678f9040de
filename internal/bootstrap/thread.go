package bootstrap

import "github.com/rs/zerolog"

// threadGuard reports UI callbacks that arrive on a thread other than the
// one that built the App. The platform types are not safe off that thread.
type threadGuard struct {
	enabled bool
	tid     int
	logger  *zerolog.Logger
}

func newThreadGuard(enabled bool, logger *zerolog.Logger) *threadGuard {
	return &threadGuard{enabled: enabled, tid: currentThreadID(), logger: logger}
}

// check returns false and logs when called off the UI thread.
func (g *threadGuard) check(op string) bool {
	if g == nil || !g.enabled {
		return true
	}
	if tid := currentThreadID(); tid != g.tid {
		g.logger.Error().
			Str("op", op).
			Int("ui_tid", g.tid).
			Int("tid", tid).
			Msg("UI callback on foreign thread")
		return false
	}
	return true
}
