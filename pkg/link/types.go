// Package link provides byte-stream transports the engine serves on.
package link

import (
	"io"
	"os"

	fx "github.com/devtalks/devlink.go/pkg/framework"
)

// Factory creates an engine (or any runnable) bound to one link. A
// link carries exactly one peer: there is no multi-client arbitration,
// matching a physical serial port.
type Factory func(rw io.ReadWriter) fx.Runnable

type stdIO struct{}

func (stdIO) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdIO) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

// StdIO gets an io.ReadWriter over the process stdin/stdout, for
// running the engine on a terminal or behind a pty.
func StdIO() io.ReadWriter {
	return stdIO{}
}
