package runner

import (
	"bufio"
	"context"
	"sync"
	"sync/atomic"
)

type inputResult struct {
	text string
	err  error
}

// inputFeed queues officer input for a handler. Lines come from the handler's
// own reader unless AttachInput was called, in which case only FeedInput
// supplies them.
type inputFeed struct {
	chanOnce sync.Once
	pumpOnce sync.Once
	ch       chan inputResult
	attached atomic.Bool
}

func (f *inputFeed) channel() chan inputResult {
	f.chanOnce.Do(func() {
		f.ch = make(chan inputResult, 16)
	})
	return f.ch
}

// AttachInput stops the handler from reading its own Reader. Call it before
// the first Input.
func (f *inputFeed) AttachInput() {
	f.attached.Store(true)
}

// FeedInput queues a line read elsewhere. A non-nil err ends the input.
func (f *inputFeed) FeedInput(ctx context.Context, text string, err error) error {
	select {
	case f.channel() <- inputResult{text: text, err: err}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// next waits for one line, starting the reader pump on first use.
func (f *inputFeed) next(ctx context.Context, r *bufio.Reader) (inputResult, error) {
	if !f.attached.Load() {
		f.pumpOnce.Do(func() {
			go pump(r, f.channel())
		})
	}
	select {
	case <-ctx.Done():
		return inputResult{}, ctx.Err()
	case res := <-f.channel():
		return res, nil
	}
}

// pump reads lines in the background so reads can honour context cancellation.
func pump(r *bufio.Reader, ch chan<- inputResult) {
	for {
		text, err := r.ReadString('\n')
		if text != "" {
			ch <- inputResult{text: text}
		}
		if err != nil {
			ch <- inputResult{err: err}
			return
		}
	}
}
