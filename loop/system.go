package loop

// System is one step of a frame. Systems may keep their own state between
// frames; everything shared lives on the session.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system during one scheduler frame.
type UpdateFrame struct {
	DeltaTime float64
	Session   *Session
}

func newUpdateFrame(dt float64, session *Session) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Session:   session,
	}
}
