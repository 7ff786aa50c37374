package mol

import "go.uber.org/zap"

// The package logger only speaks on the debug paths that the library
// exposes (sanity-check tracing, actinide substitution, multi-metal
// warnings). It is a nop unless a caller installs a real logger.
var logger = zap.NewNop()

// SetLogger installs l as the package debug logger. Passing nil
// restores the default nop logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l
}
