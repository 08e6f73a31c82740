package tui

import "sync"

// inputCapture tracks overlays that own the keyboard. While any holder is
// active, keys and scroll events go only to the topmost overlay.
type inputCapture struct {
	holders int
}

// acquire registers a holder and returns its release func. Calling release
// more than once has no further effect.
func (c *inputCapture) acquire() func() {
	c.holders++
	var once sync.Once
	return func() {
		once.Do(func() {
			if c.holders > 0 {
				c.holders--
			}
		})
	}
}

func (c *inputCapture) active() bool {
	return c.holders > 0
}
