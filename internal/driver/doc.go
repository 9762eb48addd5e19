// Package driver wires the pipeline together: file discovery, parallel
// per-file analysis (lex, parse, rules), and a disk cache that skips files
// already known to be clean under the current settings.
package driver
