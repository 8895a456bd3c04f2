package core

// DebugWriter is a function type for writing diagnostic lines
type DebugWriter func(string)

// debugPrintln is the global debug print function (set by platform code).
// No-op by default so the core carries no output dependency.
var debugPrintln DebugWriter = func(s string) {}

// SetDebugWriter sets the platform-specific debug output function.
// Targets route this to UART or USB CDC; the bench CLI reads it from there.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}
