package main

import (
	"image"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"
)

type fbScreen struct {
	dev *fb.Device
}

func openScreen(path string) (*fbScreen, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	return &fbScreen{dev: dev}, nil
}

// Show stretches img over the whole framebuffer.
func (s *fbScreen) Show(img *image.RGBA) error {
	xdraw.NearestNeighbor.Scale(s.dev, s.dev.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return nil
}

func (s *fbScreen) Close() error {
	return s.dev.Close()
}
