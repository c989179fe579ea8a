// Package timeline compiles preset animations into keyframes, group
// bindings and per-instance delays, and maps frames to seek offsets.
//
// # Keyframes
//
// Every enabled animation becomes one named keyframes block: tile
// animations are named tile-animation-<i> and grid animations
// grid-animation-<i>, where i counts enabled animations only. Each step
// contributes one frame at progress*100% holding only the properties the
// step overrides, so surrounding frames and the base variant style govern
// the rest.
//
// # Groups
//
// A [Group] aligns the enabled animations of one kind into parallel lists
// of names, durations, easings and compositions. An empty group is
// unanimated: its binding names "none" and sets every other parameter to
// "initial".
//
// # Delays
//
// Tile animations receive three independent delay terms per instance, each
// an opaque duration expression scaled by an integer: the instance index,
// its line class and its column class. Expressions are never parsed; the
// rendering surface evaluates calc(<expr> * <n>).
//
// # Seeking
//
// A [Clock] maps a 1-based frame to the current time
// (frame-1)*duration/totalFrames. Every animation is delayed by the
// negated current time, which scrubs all of them to the same instant.
package timeline
