package buffer

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/logging"
)

// Session is the state of one calculator screen: the expression text, the
// outcome of evaluating it, and a pending warning. Only one edit is in
// flight at a time; a Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	buf     *Buffer
	text    string
	outcome calc.Outcome
	warning string
	// saved is whether the current calculation is already in the history.
	saved   bool
	history History
	logger  *slog.Logger
	now     func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithBuffer sets the buffer the session applies tokens with.
func WithBuffer(b *Buffer) SessionOption {
	return func(s *Session) {
		s.buf = b
	}
}

// WithHistory sets where committed calculations are recorded.
func WithHistory(h History) SessionOption {
	return func(s *Session) {
		s.history = h
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithClock sets the source of history timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession starts a session with the canonical empty expression.
func NewSession(opts ...SessionOption) *Session {
	s := Session{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.buf == nil {
		s.buf = New()
	}
	s.text = Empty
	s.outcome = s.buf.eval.Evaluate(s.text)
	return &s
}

// Press applies a keypad token and re-evaluates the expression. If the token
// is rejected by a limit, the text is unchanged, the reason becomes the
// pending warning, and the error is returned. Unknown tokens change nothing.
func (s *Session) Press(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == Equals {
		s.commit()
		return nil
	}
	text, err := s.buf.Apply(s.text, token)
	if err != nil {
		var rej *RejectedInputError
		if errors.As(err, &rej) {
			s.warning = rej.Reason
		}
		s.logger.Debug("input refused", "token", token, "text", s.text, "error", err)
		return err
	}
	if rearms(token) {
		s.saved = false
	}
	s.set(text)
	return nil
}

// rearms reports whether token starts a new calculation for the history.
// Operators, clearing and deleting continue the current one.
func rearms(token string) bool {
	switch token {
	case Add, Sub, Mul, Div, Clear, Backspace:
		return false
	}
	return true
}

// commit records the calculation once and replaces the text with its value.
func (s *Session) commit() {
	if !s.saved && s.history != nil {
		e := Entry{Expr: s.text, Result: s.outcome.String(), Time: s.now()}
		if err := s.history.Record(e); err != nil {
			s.logger.Warn("recording history", "expr", e.Expr, "error", err)
		}
	}
	s.saved = true
	text := s.buf.Commit(s.text, s.outcome)
	s.logger.Debug("commit", "expr", s.text, "outcome", s.outcome.Kind.String(), "text", text)
	s.set(text)
}

// Load replaces the expression wholesale, as when recalling a calculation
// from the history, and evaluates it.
func (s *Session) Load(expr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = false
	s.set(orEmpty(expr))
}

func (s *Session) set(text string) {
	s.text = text
	s.outcome = s.buf.eval.Evaluate(text)
}

// Text returns the current expression.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Outcome returns the outcome of the current expression.
func (s *Session) Outcome() calc.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Snapshot returns the expression and its outcome together.
func (s *Session) Snapshot() (string, calc.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.outcome
}

// Warning returns the pending warning and clears it. Warnings do not queue;
// a new rejection replaces an unread one.
func (s *Session) Warning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.warning
	s.warning = ""
	return w
}
