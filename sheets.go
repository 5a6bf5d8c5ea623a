package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bproctor91/sidewinder/assets"
)

var sheetColors = map[string]color.RGBA{
	"player": {R: 0x4a, G: 0xb8, B: 0xa5, A: 0xff},
	"walker": {R: 0xc4, G: 0x55, B: 0x4b, A: 0xff},
	"bolt":   {R: 0xff, G: 0xd8, B: 0x66, A: 0xff},
}

// makeSheets builds flat-color placeholder sheets matching each actor's
// frame grid. Frame cells alternate brightness so clip playback stays
// visible without art assets.
func makeSheets(library *assets.AnimationLibrary) map[string]*ebiten.Image {
	sheets := make(map[string]*ebiten.Image)
	for _, kind := range library.Kinds() {
		spec, ok := library.Sheet(kind)
		if !ok {
			continue
		}
		rows, cols := spec.Rows, spec.Cols
		if rows < 1 {
			rows = 1
		}
		if cols < 1 {
			cols = 1
		}

		base, ok := sheetColors[kind]
		if !ok {
			base = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
		}
		dim := color.RGBA{R: base.R / 2, G: base.G / 2, B: base.B / 2, A: 0xff}

		img := ebiten.NewImage(cols*spec.FrameWidth, rows*spec.FrameHeight)
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				c := base
				if (row+col)%2 == 1 {
					c = dim
				}
				cell := img.SubImage(image.Rect(
					col*spec.FrameWidth, row*spec.FrameHeight,
					(col+1)*spec.FrameWidth, (row+1)*spec.FrameHeight,
				)).(*ebiten.Image)
				cell.Fill(c)
			}
		}
		sheets[kind] = img
	}
	return sheets
}
