// Package engine implements the serial command/telemetry protocol
// engine.
package engine

// The engine exposes device peripherals over a single serial link
// using a line-oriented text protocol: an operator types commands to
// configure and exercise hardware, and the same byte stream doubles as
// a structured telemetry feed once the engine is switched into
// streaming mode.
//
// Execution is a single cooperative loop: poll received bytes,
// tokenize and dispatch completed lines in arrival order, then maybe
// emit one telemetry frame. Byte reception runs on its own runnable
// whose only job is to queue bytes, keeping the receive path bounded.
// Nothing in the dispatch path blocks on external I/O; a handler that
// would need to wait reports a not-yet-ready error instead.
