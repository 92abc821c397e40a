package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=recorder.go -destination=../mocks/audio/mock_recorder.go -package=mock_audio

// Recorder captures a practice sentence from the microphone.
type Recorder interface {
	StartRecording(ctx context.Context) (*Handle, error)
	StopRecording(handle *Handle) (FileRef, error)
	IsRecording() bool
}

var ErrAlreadyRecording = errors.New("a recording is already in progress")

// DefaultRecordCommand records mono 16-bit 44.1kHz audio with SoX.
// The output path is appended as the last argument.
var DefaultRecordCommand = []string{"rec", "-q", "-c", "1", "-r", "44100", "-b", "16"}

// Handle is an active recording.
type Handle struct {
	ref  FileRef
	cmd  *exec.Cmd
	done chan error
}

func (h *Handle) Ref() FileRef {
	return h.ref
}

// CommandRecorder records by running an external program that writes a WAV
// file and stops when interrupted.
type CommandRecorder struct {
	directory   string
	command     []string
	stopTimeout time.Duration

	mu     sync.Mutex
	active *Handle
}

var _ Recorder = (*CommandRecorder)(nil)

func NewCommandRecorder(directory string, command []string) *CommandRecorder {
	if len(command) == 0 {
		command = DefaultRecordCommand
	}
	return &CommandRecorder{
		directory:   directory,
		command:     command,
		stopTimeout: 5 * time.Second,
	}
}

func (r *CommandRecorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}

func (r *CommandRecorder) StartRecording(ctx context.Context) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return nil, ErrAlreadyRecording
	}
	if err := os.MkdirAll(r.directory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", r.directory, err)
	}

	path := filepath.Join(r.directory, "recording-"+uuid.NewString()+".wav")
	args := append(append([]string{}, r.command[1:]...), path)
	cmd := exec.CommandContext(ctx, r.command[0], args...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	if err := cmd.Start(); err != nil {
		slog.Default().Error("Failed to start recording", "command", r.command[0], "error", err)
		return nil, fmt.Errorf("cmd.Start(%s) > %w", r.command[0], err)
	}

	handle := &Handle{
		ref:  FileRef{Path: path},
		cmd:  cmd,
		done: make(chan error, 1),
	}
	go func() {
		handle.done <- cmd.Wait()
	}()
	r.active = handle
	slog.Default().Debug("Started recording", "path", path)
	return handle, nil
}

// StopRecording ends the active recording and returns its file.
// Stopping when nothing is being recorded is logged and returns a zero FileRef.
func (r *CommandRecorder) StopRecording(handle *Handle) (FileRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil || handle != r.active {
		slog.Default().Warn("No active recording to stop")
		return FileRef{}, nil
	}
	r.active = nil

	if err := handle.cmd.Process.Signal(os.Interrupt); err != nil && !errors.Is(err, os.ErrProcessDone) {
		_ = handle.cmd.Process.Kill()
	}

	var waitErr error
	select {
	case waitErr = <-handle.done:
	case <-time.After(r.stopTimeout):
		_ = handle.cmd.Process.Kill()
		waitErr = <-handle.done
	}
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return FileRef{}, fmt.Errorf("cmd.Wait > %w", waitErr)
	}

	info := GetAudioInfo(handle.ref)
	if info.Size == 0 {
		return FileRef{}, fmt.Errorf("recording %s is empty", handle.ref.Path)
	}
	slog.Default().Debug("Stopped recording", "path", info.URI, "size", info.Size)
	return handle.ref, nil
}
