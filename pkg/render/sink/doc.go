// Package sink provides frame sinks for the copying-path renderer.
//
// A sink receives frames keyed by traversal step and owns persistence:
//
//   - [Dir] writes one PNG per frame into a directory, named by a
//     printf-style pattern such as "copying_%03d.png".
//   - [GIF] collects every frame and writes a single animated GIF on
//     Close.
//   - [Null] counts frames and discards them, for tests and dry runs.
//
// Frame numbering is part of the external contract with consumers of
// the rendered sequence, so sinks never renumber: the index they
// receive is the index they persist under.
package sink
