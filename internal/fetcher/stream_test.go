package fetcher

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rowCh, errCh := stream(ctx, "test", func() (rowFunc, error) {
		return func() ([]string, error) { return []string{"x"}, nil }, nil
	})

	count := 0
	for range rowCh {
		count++
		if count == 5 {
			cancel()
			break
		}
	}
	for range rowCh { //nolint:revive // drain
	}

	err := <-errCh
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test: context cancelled")
}

func TestStream_OpenError(t *testing.T) {
	rowCh, errCh := stream(context.Background(), "test", func() (rowFunc, error) {
		return nil, errors.New("no such sheet")
	})

	rows, err := collectRows(t, rowCh, errCh)
	require.Error(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, "no such sheet", err.Error())
}

func TestStream_EOFClosesCleanly(t *testing.T) {
	left := 2
	rowCh, errCh := stream(context.Background(), "test", func() (rowFunc, error) {
		return func() ([]string, error) {
			if left == 0 {
				return nil, io.EOF
			}
			left--
			return []string{"row"}, nil
		}, nil
	})

	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
