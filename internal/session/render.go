package session

import (
	"fmt"

	"github.com/vovakirdan/survive2020/internal/core"
)

const menuTitle = "S U R V I V E   2 0 2 0"

// Render draws the menu or the active level.
func (c *Controller) Render(dst *core.Screen, vp core.Viewport) {
	dst.Clear()
	if c.mode == ModeLevel && c.active != nil {
		c.active.Render(dst, vp)
		return
	}
	c.renderMenu(dst)
}

func (c *Controller) renderMenu(dst *core.Screen) {
	y := 1
	dst.DrawTextCenteredColored(y, menuTitle, core.ColorBrightYellow)
	y += 2
	if c.banner != "" {
		dst.DrawTextCenteredColored(y, c.banner, core.ColorBrightGreen)
	}
	if c.err != "" {
		dst.DrawTextCenteredColored(y+1, c.err, core.ColorRed)
	}
	y += 3

	for i, e := range c.entries {
		cursor := "  "
		color := core.ColorDefault
		if i == c.cursor {
			cursor = "> "
			color = core.ColorBrightCyan
		}
		line := fmt.Sprintf("%s%d. %-12s Best: %d", cursor, e.Info.Number, e.Info.Title, e.Best)
		dst.DrawTextCenteredColored(y, line, color)
		y += 2
	}
	if len(c.entries) == 0 {
		dst.DrawTextCenteredColored(y, "No levels registered", core.ColorGray)
	}

	dst.DrawTextCenteredColored(dst.Height()-2, "1-3/Enter: Play  |  Up/Down: Select  |  Q: Quit", core.ColorGray)
}
