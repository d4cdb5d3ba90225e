package async_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/chunpat/life-pulse-ai/pkg/utils/async"
)

func TestDispatch(t *testing.T) {
	t.Run("handler runs detached from the caller's context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		done := make(chan error, 1)
		async.Dispatch(ctx, func(ctx context.Context) error {
			done <- ctx.Err()
			return nil
		})

		gt.NoError(t, <-done)
	})

	t.Run("handler errors are swallowed after logging", func(t *testing.T) {
		done := make(chan struct{})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer close(done)
			return errors.New("handler failed")
		})
		<-done
	})

	t.Run("a panicking handler does not crash the process", func(t *testing.T) {
		done := make(chan struct{})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer close(done)
			panic("boom")
		})
		<-done
	})
}
