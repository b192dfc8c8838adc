// Package gamelog builds the process's structured logger and the fixed
// set of log records §6 requires: "request received" / "response sent"
// around every HTTP request, and "server started" / "server exited" for
// process lifecycle. Grounded in the retrieved pack's zap.Config setup
// (0ab2dfe9_rdtc8822-debug-L1JGO-Whale's newLogger) and the original
// C++'s boost::log JSON formatter, whose field names ("response_time",
// "code", etc) this package keeps.
package gamelog
