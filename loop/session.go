// Package loop drives a board from a fixed-rate host loop. A Scheduler runs
// an ordered list of systems each frame against a Session, which holds the
// board together with the host-side input state the engine never sees: the
// frame counter, the held soft-drop flag and the queue of logical actions.
package loop

import (
	"github.com/google/uuid"
	"github.com/plus3/blockfall/board"
	"github.com/sirupsen/logrus"
)

// DefaultFPS is the frame rate the game is tuned for.
const DefaultFPS = 25

// frameWrap bounds the frame counter.
const frameWrap = 100000

// Session is one game: a board plus the host loop state around it.
type Session struct {
	ID    uuid.UUID
	Board *board.Board
	FPS   int

	log      logrus.FieldLogger
	frame    int
	softDrop bool
	pending  []Action
	finished bool
}

// NewSession wraps a board. fps values below 1 fall back to DefaultFPS.
func NewSession(b *board.Board, fps int, log logrus.FieldLogger) *Session {
	if fps < 1 {
		fps = DefaultFPS
	}
	id := uuid.New()
	return &Session{
		ID:    id,
		Board: b,
		FPS:   fps,
		log:   log.WithField("session", id.String()),
	}
}

// Push queues an action for the next frame's input system.
func (s *Session) Push(a Action) {
	if a == ActionNone {
		return
	}
	s.pending = append(s.pending, a)
}

func (s *Session) drain() []Action {
	actions := s.pending
	s.pending = nil
	return actions
}

// Pending is the number of queued actions.
func (s *Session) Pending() int { return len(s.pending) }

// Frame is the wrapped frame counter.
func (s *Session) Frame() int { return s.frame }

// SoftDrop reports whether soft drop is held.
func (s *Session) SoftDrop() bool { return s.softDrop }

// Finished reports whether the player asked to quit.
func (s *Session) Finished() bool { return s.finished }

// Finish ends the session.
func (s *Session) Finish() { s.finished = true }

// GravityInterval is the number of frames between gravity steps.
func (s *Session) GravityInterval() int {
	return max(s.FPS/2, 1)
}

// Logger returns the session's logger.
func (s *Session) Logger() logrus.FieldLogger { return s.log }
