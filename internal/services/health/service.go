package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB Pinger
}

// NewService constructs a new health service. A nil db reports in-memory history.
func NewService(db Pinger) *Service {
	return &Service{DB: db}
}

// Status reports whether the service can serve requests, along with the
// history backend in use.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	if s == nil || s.DB == nil {
		return map[string]any{"ok": true, "history": "memory"}, true
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		return map[string]any{"ok": false, "history": "postgres", "error": "database unreachable"}, false
	}
	return map[string]any{"ok": true, "history": "postgres"}, true
}
