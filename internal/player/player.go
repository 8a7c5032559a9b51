// Package player plays encoded audio files through an external command.
package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultCommand is the ALSA command-line player.
const DefaultCommand = "aplay"

// ExitError reports a player that ran but exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("player: %s exited with status %d", e.Command, e.Code)
	}
	return fmt.Sprintf("player: %s exited with status %d: %s", e.Command, e.Code, e.Stderr)
}

// Player runs Command with optional leading Args and the file path.
type Player struct {
	Command string
	Args    []string
	Logger  logrus.FieldLogger
}

// New returns a Player for command, or DefaultCommand when command is empty.
func New(command string, args ...string) *Player {
	if command == "" {
		command = DefaultCommand
	}
	return &Player{Command: command, Args: args, Logger: logrus.StandardLogger()}
}

// Play runs the player on path and waits for it to exit. A non-zero exit
// status is returned as *ExitError.
func (p *Player) Play(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("player: path must not be empty")
	}
	command := p.Command
	if command == "" {
		command = DefaultCommand
	}
	log := p.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	args := append(append([]string(nil), p.Args...), path)
	cmd := exec.CommandContext(ctx, command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	entry := log.WithFields(logrus.Fields{
		"command": command,
		"path":    path,
	})
	entry.Info("Playing file")

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		e := &ExitError{
			Command: command,
			Code:    exitErr.ExitCode(),
			Stderr:  strings.TrimSpace(stderr.String()),
		}
		entry.WithField("status", e.Code).Warn("Player exited with error")
		return e
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("player: %s: %w", command, ctxErr)
	}
	return fmt.Errorf("player: %s: %w", command, err)
}
