// Package sh provides the ishell backed operator shell for talking to
// a devlink engine over a remote link.
package sh

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/devtalks/devlink.go/pkg/link/ws"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool

	Shell *ishell.Shell
	Conn  *Conn
}

// Conn is an established link to an engine. Replies and telemetry
// frames arrive asynchronously and are printed as they come.
type Conn struct {
	Target string
	RW     io.ReadWriteCloser
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly bool

	// commands
	commands = []*ishell.Cmd{
		&ConnectCmd,
		&DisconnectCmd,
		&SendCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New() *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Conn == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// Dial establishes a link to target: a ws://host/link URL or a
// host:port TCP address (optionally prefixed tcp://).
func Dial(target string) (io.ReadWriteCloser, error) {
	if strings.HasPrefix(target, "ws://") || strings.HasPrefix(target, "wss://") {
		return ws.Dial(target, "http://localhost/")
	}
	return net.Dial("tcp", strings.TrimPrefix(target, "tcp://"))
}

// Connect connects to an engine and starts printing incoming lines.
func (s *Shell) Connect(target string) error {
	rw, err := Dial(target)
	if err != nil {
		return err
	}
	if s.Conn != nil {
		s.Disconnect()
	}
	conn := &Conn{Target: target, RW: rw}
	s.Conn = conn
	go s.readLoop(conn)
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", target))
	return nil
}

func (s *Shell) readLoop(conn *Conn) {
	scanner := bufio.NewScanner(conn.RW)
	for scanner.Scan() {
		s.Shell.Println(strings.TrimRight(scanner.Text(), "\r"))
	}
	if s.Conn == conn {
		s.Shell.Println("[link closed]")
		s.Conn = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Disconnect disconnects the current link.
func (s *Shell) Disconnect() {
	if s.Conn != nil {
		s.Conn.RW.Close()
		s.Conn = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Send writes one command line to the engine.
func (s *Shell) Send(line string) error {
	if s.Conn == nil {
		return fmt.Errorf("not connected")
	}
	_, err := io.WriteString(s.Conn.RW, line+"\n")
	return err
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// ConnectCmd connects to an engine.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "TARGET (ws://host:port/link or host:port)",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("TARGET required"))
				return
			}
			if err := ShellFrom(c).Connect(c.Args[0]); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects the current link.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// SendCmd sends a raw command line to the engine.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "COMMAND [ARG ...]",
		Func: MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("COMMAND required"))
				return
			}
			if err := ShellFrom(c).Send(strings.Join(c.Args, " ")); err != nil {
				c.Err(err)
			}
		}),
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New().Run(flag.Args()...)
}
