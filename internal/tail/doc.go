// Package tail follows a growing log file and feeds its lines into the
// viewer's record buffer. It starts from a bounded backlog at the end of the
// file, then appends new lines as they are written, waking on fsnotify
// events with a periodic fallback tick. Truncation reopens from the start.
package tail
