package fetcher

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
)

// rowFunc returns the next row, or io.EOF when there are no more.
type rowFunc func() ([]string, error)

// stream pumps rows from next onto a channel until EOF, an error, or ctx
// is done. Both channels are closed when it returns; at most one error is
// sent.
func stream(ctx context.Context, format string, open func() (rowFunc, error)) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		next, err := open()
		if err != nil {
			errCh <- err
			return
		}

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrapf(ctx.Err(), "%s: context cancelled", format)
				return
			}

			row, err := next()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrapf(err, "%s: read row", format)
				return
			}

			select {
			case rowCh <- row:
			case <-ctx.Done():
				errCh <- eris.Wrapf(ctx.Err(), "%s: context cancelled", format)
				return
			}
		}
	}()

	return rowCh, errCh
}
