package agent

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	apperrors "github.com/relay-ai/relay/internal/errors"
)

// Session holds the per-conversation mutable state: the working
// directory merged into tool calls and the remote connection flag.
// One utterance is processed at a time, so access is unsynchronized.
type Session struct {
	ID         string
	workingDir string
	connected  bool
}

// NewSession creates a session rooted at the given working directory.
func NewSession(workingDir string) *Session {
	return &Session{
		ID:         uuid.NewString(),
		workingDir: workingDir,
	}
}

// WorkingDir returns the current default working directory.
func (s *Session) WorkingDir() string {
	return s.workingDir
}

// ChangeDir switches the default working directory. The target must
// exist; the stored path is absolute.
func (s *Session) ChangeDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return apperrors.NewBuilder(apperrors.CodeFileAccessDenied, "directory not found: "+dir).
			User().
			WithSuggestion("Check the path and try again").
			Build()
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return apperrors.NewBuilder(apperrors.CodeFileAccessDenied, "cannot resolve directory").
			Wrap(err).
			User().
			Build()
	}

	s.workingDir = abs
	return nil
}

// Connected reports whether the remote tool server is believed live.
func (s *Session) Connected() bool {
	return s.connected
}

// SetConnected records the remote tool server state.
func (s *Session) SetConnected(v bool) {
	s.connected = v
}
