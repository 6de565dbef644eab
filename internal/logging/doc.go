// Buffered slog handling for the luantibuild CLI.
//
// The handler accepts records from the moment the process starts, holding
// them in memory until the command line has been parsed and the final log
// level, formatter, and stream are known. Flushing replays the buffer through
// that configuration; afterwards records are written directly.
//
// Example usage:
//
//	handler := logging.NewHandler()
//	slog.SetDefault(slog.New(handler))
//
//	// ... parse flags ...
//
//	handler.SetLevel(slog.LevelDebug)
//	handler.SetFormatter(logging.NewPrettyFormatter(true))
//	handler.SetStream(os.Stderr)
//	handler.Flush()
package logging
