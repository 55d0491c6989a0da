// Package besteffort runs cleanup operations whose failure must never
// abort the caller. Failures are logged and swallowed.
package besteffort

import (
	"log/slog"

	"heritage_cms/internal/lib/logger/sl"
)

func Run(log *slog.Logger, op string, fn func() error) {
	if err := fn(); err != nil {
		log.Warn("best-effort operation failed",
			slog.String("op", op),
			sl.Err(err),
		)
	}
}
