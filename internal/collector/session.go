package collector

import (
	"path/filepath"

	"github.com/google/uuid"
)

// Session identifies one run of the collector. Exactly one session exists per
// process lifetime and its log file path is stable for the duration of the run.
type Session struct {
	ID          string
	LogFilePath string
}

// NewSession builds the session identity. An external override wins when
// present; otherwise a fresh identifier is generated.
func NewSession(override, logDir string) Session {
	id := override
	if id == "" {
		id = uuid.NewString()
	}
	return Session{
		ID:          id,
		LogFilePath: filepath.Join(logDir, "session-"+id+".jsonl"),
	}
}
