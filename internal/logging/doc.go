// Package logging builds the slog loggers used by prm.
//
// Console output is a compact human format written to stderr so it never mixes
// with command output on stdout; JSON output is available for log shippers.
// Every invocation carries a correlation ID so interleaved runs from cron can
// be told apart.
package logging
