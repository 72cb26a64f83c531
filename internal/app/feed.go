package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/portholedev/porthole/internal/logring"
	"github.com/portholedev/porthole/internal/parse"
)

var nowFunc = time.Now

// startStdinFeed copies piped input into the buffer in the background.
func startStdinFeed(ctx context.Context, buffer *logring.Buffer) {
	go func() {
		_ = feed(ctx, os.Stdin, buffer)
	}()
}

// feed reads r line by line into the buffer until EOF or ctx cancellation.
// A trailing line without a newline is still appended.
func feed(ctx context.Context, r io.Reader, buffer *logring.Buffer) error {
	w := parse.NewWriter(buffer)
	buf := make([]byte, 32*1024)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		n, err := r.Read(buf)
		if n > 0 {
			// parse.Writer never fails.
			_, _ = w.Write(buf[:n])
		}
		if err != nil {
			w.Flush()
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
