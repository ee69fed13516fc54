package blockparser

import (
	"errors"
	"fmt"
)

// ErrOutOfStackSpace is returned when a bounded block stack would need to
// grow past its configured capacity to accept another open container.
var ErrOutOfStackSpace = errors.New("blockparser: out of stack space")

// Unreachable panics; it marks states the root parser's state machine
// guarantees it never enters.
func Unreachable(format string, args ...any) {
	panic(fmt.Sprintf("blockparser: unreachable: "+format, args...))
}
