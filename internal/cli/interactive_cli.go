package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

var errEnd = errors.New("end")

// Session runs one step of an interactive loop. Returning errEnd stops the loop.
type Session interface {
	Session(ctx context.Context) error
}

// Run calls session.Session until it ends, fails, or the user presses Ctrl-C.
func Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}
