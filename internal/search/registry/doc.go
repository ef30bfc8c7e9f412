// Package registry tracks the quick-search sessions running across
// buffers, at most one per buffer.
//
// A Registry is an explicit value owned by the host adapter: sessions are
// created by Start, fed input by Dispatch and dropped as soon as they
// terminate or fail.
//
//	reg := registry.New(h, session.DefaultOptions())
//	if err := reg.Start(id, match.Forward); err != nil { ... }
//	consumed, err := reg.Dispatch(id, ev)
package registry
