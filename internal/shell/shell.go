package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

type Result struct {
	Stdout []byte
	Stderr []byte
	Code   int
}

var (
	ErrTimeout  = errors.New("command timed out")
	ErrNotFound = errors.New("command not found")
)

// Runner executes a single external command and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Exec runs commands through os/exec. A zero Timeout waits for the child
// for as long as it takes.
type Exec struct {
	Timeout time.Duration
}

func (e Exec) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return Run(ctx, e.Timeout, name, args...)
}

func Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error) {
	cctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(cctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	res := Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes(), Code: exitCode(err)}
	if cctx.Err() == context.DeadlineExceeded {
		return res, ErrTimeout
	}
	if errors.Is(err, exec.ErrNotFound) {
		return res, errors.Join(ErrNotFound, err)
	}
	return res, err
}

// Started reports whether err came from a child that actually ran, i.e.
// the process was spawned and exited with a status.
func Started(err error) bool {
	if err == nil {
		return true
	}
	var ee *exec.ExitError
	return errors.As(err, &ee)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
