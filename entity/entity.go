// Package entity holds the concrete body variants placed in scenes
// Each variant embeds physics.Body and overrides only the hooks it changes
package entity

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/tumble/audio"
	"github.com/lixenwraith/tumble/render"
)

// Sounder plays impact cues, *audio.Player satisfies it
type Sounder interface {
	Play(cue audio.Cue)
}

func play(s Sounder, cue audio.Cue) {
	if s != nil {
		s.Play(cue)
	}
}

func fg(c tcell.Color) tcell.Style {
	return tcell.StyleDefault.Background(render.RgbBackground).Foreground(c)
}

func solid(c tcell.Color) tcell.Style {
	return tcell.StyleDefault.Background(c).Foreground(c)
}
