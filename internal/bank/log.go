package bank

import "log/slog"

// logOrDefault returns l, or the process default logger if l is nil.
// Every internal call site routes through this so a zero-value Host
// still logs sensibly, matching config.go's "nil -> slog.Default()"
// convention used throughout this codebase.
func logOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
