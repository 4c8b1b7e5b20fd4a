// Package proteins exposes a protein catalog as selector options plus a
// small net/http handler that returns JSON options for the viewer picker.
//
// Catalog entries get stable handles (p0, p1, ...) in declaration order so
// the browser never round-trips raw descriptors. The default handler
// responds to GET and HEAD requests and supports query and limit parameters
// to filter results.
package proteins
