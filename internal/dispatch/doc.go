// Package dispatch implements the request dispatcher.
//
// For every inbound frame the Dispatcher:
//   - decodes the first JSON value (undecodable frames are dropped silently)
//   - validates that request-type is a string
//   - looks the type up in an immutable Table of handlers
//   - invokes the handler synchronously on the calling goroutine
//   - correlates the envelope with message-id and pushes it to an Outbox
//
// Exactly one envelope is pushed for every frame that decodes.
package dispatch
