// Package run provides helpers to run background pieces of the flasher
// and to make blocking transfers cancellable.
package run

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
)

// Runnable is a background runner driven by a context.
type Runnable interface {
	Run(context.Context) error
}

// RunFunc is the func form of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Runner runs multiple Runnables and collects their errors.
type Runner struct {
	Context context.Context

	runners []Runnable
	errCh   chan error
	exitCh  chan struct{}
}

// NewRunner creates a Runner with the given context.
func NewRunner(ctx context.Context) *Runner {
	return &Runner{
		Context: ctx,
		errCh:   make(chan error, 1),
		exitCh:  make(chan struct{}),
	}
}

// HandleSignals cancels the context on CtrlC/SIGTERM and force-exits
// on a second signal.
func (r *Runner) HandleSignals() *Runner {
	ctx, cancel := context.WithCancel(r.Context)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	r.Context = ctx
	go func() {
		<-sigCh
		glog.Info("stop requested")
		cancel()
		<-sigCh
		glog.Error("stop requested again, force exit")
		close(r.exitCh)
	}()
	return r
}

// Go spawns Runnables.
func (r *Runner) Go(runnables ...Runnable) *Runner {
	for _, runnable := range runnables {
		n := len(r.runners)
		r.runners = append(r.runners, runnable)
		go func(runnable Runnable, n int) {
			glog.V(4).Infof("runner[%d] started", n)
			r.errCh <- runnable.Run(r.Context)
			glog.V(4).Infof("runner[%d] stopped", n)
		}(runnable, n)
	}
	return r
}

// Wait waits until all spawned Runnables stop and aggregates errors.
func (r *Runner) Wait() error {
	var errs AggregatedError
	for range r.runners {
		select {
		case <-r.exitCh:
			return errors.New("forced exit")
		case err := <-r.errCh:
			if err != context.Canceled {
				errs.Add(err)
			}
		}
	}
	return errs.Aggregate()
}

// WithCancel runs a blocking fn and calls onCancel if the context is
// canceled before fn returns.
func WithCancel(ctx context.Context, onCancel func(), fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	select {
	case <-ctx.Done():
		if onCancel != nil {
			onCancel()
		}
		<-errCh
		return context.Canceled
	case err := <-errCh:
		return err
	}
}

// WithCloser runs a blocking fn and ensures closer.Close is called,
// on cancellation or on exit of fn. Closing the transport is what
// unblocks a read stuck waiting for a silent device.
func WithCloser(ctx context.Context, closer io.Closer, fn func() error) error {
	var closed bool
	err := WithCancel(ctx, func() {
		closer.Close()
		closed = true
	}, fn)
	if !closed {
		closer.Close()
	}
	return err
}
