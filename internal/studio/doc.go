// Package studio is the in-process domain layer served by the remote API:
// the scene graph, the two-channel audio mixer and the stream engine.
//
// The scene graph is guarded by the scene lock, readable through
// ViewScenes. Mixer and stream state have their own lock, always taken
// after the scene lock when both are needed. Listener callbacks run after
// every lock is released, so listeners may call ViewScenes. The save lock
// is taken before the scene lock.
package studio
