// Package server wires and runs the application's HTTP transport.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown. In-flight requests are given ShutdownTimeout to complete after
// SIGTERM, SIGINT or SIGQUIT.
package server
