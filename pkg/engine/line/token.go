package line

import "strings"

// Command is one parsed input line: a command name plus its positional
// arguments, in order. It is built only by Tokenize and is consumed by
// exactly one dispatch call.
type Command struct {
	Name string
	Args []string
}

// IsNoOp indicates the line was blank. A no-op command has no effect
// and is not an error.
func (c Command) IsNoOp() bool {
	return c.Name == ""
}

// Tokenize splits a complete line on runs of whitespace. There is no
// quoting or escaping: arguments are plain tokens, one linear pass.
func Tokenize(s string) Command {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Command{}
	}
	return Command{Name: fields[0], Args: fields[1:]}
}
