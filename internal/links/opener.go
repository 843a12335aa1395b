package links

import (
	"os/exec"
	"runtime"

	"github.com/markwatch/markwatch/pkg/errors"
	"github.com/markwatch/markwatch/pkg/logger"
	"go.uber.org/zap"
)

// DetachedOpener launches the platform's default handler for a file and does
// not wait for it
type DetachedOpener struct{}

// NewDetachedOpener creates a platform launcher
func NewDetachedOpener() *DetachedOpener {
	return &DetachedOpener{}
}

// OpenDetached starts the platform open command for the given path and
// releases the child process so it outlives the caller
func (o *DetachedOpener) OpenDetached(path string) error {
	cmd := launchCommand(path)

	if err := cmd.Start(); err != nil {
		return errors.NewOpenError(path, err)
	}
	if err := cmd.Process.Release(); err != nil {
		logger.Get().Warn("Failed to release opener process",
			zap.String("path", path),
			zap.Error(err),
		)
	}

	logger.Get().Debug("Opened linked file", zap.String("path", path))
	return nil
}

func launchCommand(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
