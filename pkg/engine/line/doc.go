// Package line provides bounded line accumulation and tokenizing.
package line

// The receive side of the link protocol is line oriented: bytes are
// accumulated into a fixed-capacity buffer until a terminator arrives,
// and the completed line is split into a command name plus positional
// arguments. The buffer never grows and never overflows: once full, the
// partial line is discarded rather than truncated, so a clipped command
// name can never match an unintended table entry.
//
// Producer: the serial receive path (one byte per Push)
// Consumer: the dispatch table
