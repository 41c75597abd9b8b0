// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a compact console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - a shared level switched at runtime with SetLevel.
//
// Services accept a context and extract the logger from it, so a run can be
// scoped by name and fields without threading a logger through every call.
package logger
