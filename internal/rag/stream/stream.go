package stream

import (
	"context"
	"strings"
	"time"
)

// Emitter turns a composed answer into a lazy word-by-word stream. The
// delay paces interactive delivery; a zero delay emits as fast as the
// consumer drains.
type Emitter struct {
	delay time.Duration
}

func NewEmitter(delay time.Duration) Emitter {
	return Emitter{delay: delay}
}

// Emit yields each whitespace-separated word with a single trailing space.
// The channel closes after the last word. A consumer that wants to stop
// early cancels the context; the goroutine holds no other resources.
func (e Emitter) Emit(ctx context.Context, answer string) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)
		for _, word := range strings.Fields(answer) {
			if e.delay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(e.delay):
				}
			}
			select {
			case <-ctx.Done():
				return
			case out <- word + " ":
			}
		}
	}()

	return out
}
