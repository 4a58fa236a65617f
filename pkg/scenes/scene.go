package scenes

import (
	"github.com/gonewx/scrollstory/pkg/game"
)

// Scene is a type alias for game.Scene so callers can stay within this package.
type Scene = game.Scene

var (
	_ Scene         = (*StoryScene)(nil)
	_ game.Saveable = (*StoryScene)(nil)
	_ game.Sized    = (*StoryScene)(nil)
)
