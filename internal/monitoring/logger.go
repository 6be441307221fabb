// Package monitoring holds the diagnostic loggers shared by the wall
// pipeline, the frame mapper and the run store.
package monitoring

import "log"

// Logf is the package-level diagnostic logger for conditions worth a line in
// the log even in production, such as a fixpoint pass hitting its iteration
// cap. It defaults to log.Printf and may be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf receives per-stage pipeline counts. It is a no-op until SetVerbose
// turns it on.
var Debugf func(format string, v ...interface{}) = noop

func noop(string, ...interface{}) {}

// SetLogger replaces Logf. Passing nil mutes it. When verbose output is on,
// Debugf follows the new logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		f = noop
	}
	verboseOn := verbose
	Logf = f
	SetVerbose(verboseOn)
}

var verbose bool

// SetVerbose routes Debugf to Logf when on and mutes it when off.
func SetVerbose(on bool) {
	verbose = on
	if on {
		Debugf = func(format string, v ...interface{}) { Logf(format, v...) }
		return
	}
	Debugf = noop
}
