package loop

import (
	"github.com/plus3/blockfall/board"
	"github.com/sirupsen/logrus"
)

// SpawnSystem gives the board a piece when it has none.
type SpawnSystem struct{}

func (s *SpawnSystem) Execute(frame *UpdateFrame) {
	b := frame.Session.Board
	if _, ok := b.Active(); ok || b.State() != board.Running {
		return
	}
	b.SpawnNext()
}

// GravitySystem advances the frame counter and moves the piece down every
// GravityInterval frames, or every frame while soft drop is held.
type GravitySystem struct{}

func (s *GravitySystem) Execute(frame *UpdateFrame) {
	session := frame.Session
	session.frame++
	if session.frame > frameWrap {
		session.frame = 0
	}

	if session.frame%session.GravityInterval() != 0 && !session.softDrop {
		return
	}
	if session.Board.State() == board.Running {
		session.Board.MoveDown()
	}
}

// InputSystem applies queued actions in arrival order. Only quit and the
// soft-drop flag are honoured once the game is over.
type InputSystem struct {
	Applied int64
}

func (s *InputSystem) Execute(frame *UpdateFrame) {
	session := frame.Session
	for _, action := range session.drain() {
		s.apply(session, action)
	}
}

func (s *InputSystem) apply(session *Session, action Action) {
	b := session.Board

	switch action {
	case ActionQuit:
		session.Finish()
		return
	case ActionSoftDropBegin:
		session.softDrop = true
		return
	case ActionSoftDropEnd:
		session.softDrop = false
		return
	}

	if b.State() != board.Running {
		return
	}

	switch action {
	case ActionRotate:
		b.Rotate()
	case ActionMoveLeft:
		b.MoveHorizontal(-1)
	case ActionMoveRight:
		b.MoveHorizontal(1)
	case ActionHardDrop:
		b.DropHard()
	default:
		return
	}
	s.Applied++
}

// StatusSystem logs line clears and the transition to game over.
type StatusSystem struct {
	lines    int
	score    int
	reported bool
}

func (s *StatusSystem) Execute(frame *UpdateFrame) {
	session := frame.Session
	b := session.Board

	if cleared := b.LinesCleared() - s.lines; cleared > 0 {
		session.log.WithFields(logrus.Fields{
			"lines":  cleared,
			"gained": b.Score() - s.score,
			"score":  b.Score(),
		}).Info("lines cleared")
	}
	s.lines = b.LinesCleared()
	s.score = b.Score()

	if b.State() == board.GameOver && !s.reported {
		s.reported = true
		session.log.WithFields(logrus.Fields{
			"score":  b.Score(),
			"lines":  b.LinesCleared(),
			"pieces": b.PiecesLocked(),
			"frame":  session.frame,
		}).Warn("game over")
	}
}
