// Package app wires the Porthole pieces together: it loads configuration and
// preferences, builds the record buffer, starts the producer (file tailer or
// stdin pipe), and runs the UI until the context is cancelled.
package app
