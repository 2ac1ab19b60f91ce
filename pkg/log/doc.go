// Package log provides the logging abstraction used across xtalcheck.
//
// Library packages accept a Logger and default to NoopLogger, so embedding
// programs decide where output goes. The CLI wires the zerolog adapter.
//
// # Usage
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel)
//	v := xtal.New(xtal.Known(), xtal.WithLogger(logger))
//
// Fields are built with the helpers in this package:
//
//	logger.Warn("unknown crystal value",
//	    log.Hz("value", 14_318_000),
//	    log.String("context", "maincpu"),
//	)
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.1.0
package log
