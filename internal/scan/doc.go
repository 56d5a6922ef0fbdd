// Package scan walks a directory tree and collects per-file metadata.
//
// It walks directory trees using fastwalk for parallel traversal,
// skipping configured directory names at any depth, and produces one
// immutable FileRecord per regular file with its size, coarse type
// classification and last-modification time.
package scan
