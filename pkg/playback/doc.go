// Package playback implements the render state machine and the
// frame-by-frame export loop.
//
// # States
//
// A [Player] starts paused at frame 1. Play and Pause switch state
// directly. Stop and End move to frame 1 and the last frame respectively,
// publish the stopped state, then settle to paused from a separate
// goroutine; the channel they return closes once settled. Observers see
// the stopped pulse as its own [Event], distinct from the steady paused
// state. SetCurrentFrame seeks in any state without changing it. The
// engine never advances frames while playing: continuous playback belongs
// to the rendering surface's own animation clock.
//
// # Export
//
// [Player.Export] stops the player, then for every frame from 1 to the
// clock's total in order: seeks, checks the cancellation flag and calls the
// capture function. Captures are strictly sequential. [Player.CancelExport]
// sets the flag from any goroutine; the loop returns [ErrCancelled] at the
// next frame boundary. A failing capture aborts the loop and its error is
// returned wrapped with the frame number.
package playback
