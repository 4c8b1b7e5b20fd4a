// Package template defines renderer-agnostic template interfaces so
// viewer renderers stay decoupled from the concrete template engine.
package template
