// Package report defines the sink side of a run. A Reporter receives the
// finished, immutable Result and presents or exports it; it never feeds
// anything back into the computation. Reporters are created from
// configuration through a factory registry and combined with NewMulti.
package report
