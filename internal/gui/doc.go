// Package gui presents the rendered frame in a raylib window and feeds
// mouse, wheel and keyboard input to the navigator.
//
// The frame is uploaded to a texture only when the session redraws it, so
// an idle view costs one texture blit per frame.
package gui
