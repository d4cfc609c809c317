// Package dispatch maps command names to handlers.
package dispatch

import (
	"fmt"
	"io"

	"github.com/devtalks/devlink.go/pkg/engine/line"
)

// HandlerFunc processes one dispatched command. Arity is validated
// before the handler runs, so the handler only checks argument content.
// The returned message is the free-form confirmation appended to the
// OK reply; a returned error rejects the command.
type HandlerFunc func(c *Call) (string, error)

// Entry describes one command in the table.
type Entry struct {
	Name    string
	Usage   string // argument synopsis, e.g. "<pin>"
	Help    string
	MinArgs int
	MaxArgs int
	Func    HandlerFunc
}

// Call provides the context of one handler invocation.
type Call struct {
	Args []string

	table *Table
	out   io.Writer
}

// Get retrieves a value attached to the table via Set.
func (c *Call) Get(key string) interface{} {
	return c.table.values[key]
}

// Table gets the table this call was dispatched from.
func (c *Call) Table() *Table {
	return c.table
}

// Println writes one raw output line to the link, ahead of the
// OK/ERROR reply. Used by commands with multi-line output like help.
func (c *Call) Println(s string) {
	if c.out != nil {
		fmt.Fprintf(c.out, "%s\r\n", s)
	}
}

// Printf is the formatted form of Println.
func (c *Call) Printf(format string, args ...interface{}) {
	c.Println(fmt.Sprintf(format, args...))
}

// Table is a fixed set of command entries looked up by exact,
// case-sensitive name match. The set is small, so lookup is a linear
// scan and needs no hashing.
type Table struct {
	entries []*Entry
	values  map[string]interface{}
}

// NewTable creates a Table with the given entries.
func NewTable(entries ...*Entry) *Table {
	return (&Table{values: make(map[string]interface{})}).Add(entries...)
}

// Add appends entries to the table.
func (t *Table) Add(entries ...*Entry) *Table {
	t.entries = append(t.entries, entries...)
	return t
}

// Set attaches a named value retrievable from handlers via Call.Get.
func (t *Table) Set(key string, value interface{}) *Table {
	t.values[key] = value
	return t
}

// Entries gets all registered entries in registration order.
func (t *Table) Entries() []*Entry {
	return t.entries
}

// Lookup finds an entry by name, nil if absent.
func (t *Table) Lookup(name string) *Entry {
	for _, e := range t.entries {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Dispatch matches a parsed command against the table and invokes its
// handler. Arity mismatch rejects the command without invoking the
// handler. No-op commands return immediately with no effect.
func (t *Table) Dispatch(out io.Writer, cmd line.Command) (string, error) {
	if cmd.IsNoOp() {
		return "", nil
	}
	e := t.Lookup(cmd.Name)
	if e == nil {
		return "", ErrUnknownCommand
	}
	if len(cmd.Args) < e.MinArgs || (e.MaxArgs >= 0 && len(cmd.Args) > e.MaxArgs) {
		return "", &UsageError{Entry: e}
	}
	return e.Func(&Call{Args: cmd.Args, table: t, out: out})
}

// registered collects entries contributed by command provider packages
// from their init funcs.
var registered []*Entry

// Register is used by command providers during init.
func Register(entries ...*Entry) {
	registered = append(registered, entries...)
}

// Registered gets all entries contributed via Register.
func Registered() []*Entry {
	return registered
}
