package quiz

import (
	"time"

	"github.com/lauralie13/Spy-Academy/internal/session"
)

// startedMsg is sent when the runner has started the session.
type startedMsg struct {
	State *session.State
	Err   error
}

// explainPollMsg asks the screen to check for a finished explanation.
type explainPollMsg time.Time

// finishMsg triggers the end-of-session flow.
type finishMsg struct{}
