package zabbix

import (
	"log"
	"time"
)

// Session is one logical connection to the Zabbix database plus its retry
// policy. Queries on a session run one at a time to completion; callers
// wanting parallelism open independent sessions, which fail independently.
type Session struct {
	cfg     Config
	storage Storage
	logger  *log.Logger

	// now is the clock for tier selection. Injectable so tier decisions are
	// testable without a live wall clock.
	now func() int64
}

// NewSession validates the config, opens the database connection and returns
// a ready session. The caller owns the session and must Close it.
func NewSession(cfg Config) (*Session, error) {
	cfg = applyDefaults(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	st, err := openStorage(cfg.Database)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:     cfg,
		storage: st,
		logger:  log.Default(),
		now:     func() int64 { return time.Now().Unix() },
	}, nil
}

// Close releases the connection. Safe on every exit path; a closed session
// must not be reused.
func (s *Session) Close() error {
	if s.storage == nil {
		return nil
	}
	err := s.storage.Close()
	s.storage = nil
	return err
}

// ensureConnected probes the connection before an operation and reconnects
// with doubling backoff when the probe fails. Exhausting the budget is the
// fatal ConnectionError; no partial results are produced.
func (s *Session) ensureConnected() error {
	if err := s.storage.Ping(); err == nil {
		return nil
	}

	delay := s.cfg.Retry.Backoff
	var lastErr error
	for attempt := 1; attempt <= s.cfg.Retry.Attempts; attempt++ {
		s.storage.Close()
		st, err := openStorage(s.cfg.Database)
		if err == nil {
			if err = st.Ping(); err == nil {
				s.storage = st
				if s.cfg.DevMode {
					s.logger.Printf("[zabbix] reconnected on attempt %d", attempt)
				}
				return nil
			}
			st.Close()
		}
		lastErr = err

		time.Sleep(delay)
		delay *= 2
		if delay > s.cfg.Retry.MaxBackoff {
			delay = s.cfg.Retry.MaxBackoff
		}
	}
	return &ConnectionError{Attempts: s.cfg.Retry.Attempts, Err: lastErr}
}
