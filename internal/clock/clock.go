package clock

import (
	"context"
	"time"
)

// Clock abstracts wall time so services stamp rows and the order
// generation job picks its reference date from an injectable source.
type Clock interface {
	Now(ctx context.Context) time.Time
}
