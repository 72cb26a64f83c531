// Package parse turns raw log lines into logring records. It understands
// plain text lines with a leading timestamp and level token, and JSON lines
// in the shape emitted by structured loggers. Unparseable input still yields
// a record so no line is ever dropped.
package parse
