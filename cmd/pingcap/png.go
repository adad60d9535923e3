package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pingpong-gl/libio"

	xdraw "golang.org/x/image/draw"
)

type pngArgs struct {
	out   string
	scale float64
	every int
	quiet bool
}

func createPngCommand() *command {
	args := pngArgs{
		scale: 1.0,
		every: 1,
	}

	flags := flag.NewFlagSet("png", flag.ExitOnError)
	flags.StringVar(&args.out, "out", args.out, "the output directory")
	flags.StringVar(&args.out, "o", args.out, "shorthand for out")
	flags.Float64Var(&args.scale, "scale", args.scale, "the output scale factor")
	flags.IntVar(&args.every, "every", args.every, "exports only every nth frame")
	flags.BoolVar(&args.quiet, "quiet", args.quiet, "disables informational logging")
	flags.BoolVar(&args.quiet, "q", args.quiet, "shorthand for quiet")

	return &command{
		Name:  "png",
		Usage: "file",
		Help:  "export capture frames as png images",
		Flags: flags,
		Run: func(self *command) error {
			if self.Flags.NArg() != 1 || args.scale <= 0 || args.every < 1 {
				return errUsage
			}
			if args.out == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				args.out = wd
			}
			if _, err := os.Stat(args.out); err != nil {
				return fmt.Errorf("cannot stat output directory: %w", err)
			}
			return exportPng(args, self.Flags.Arg(0))
		},
	}
}

func exportPng(args pngArgs, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer closeQuietly(file)

	reader, err := libio.NewCaptureReader(bufio.NewReader(file))
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	for n := 0; ; n++ {
		index, img, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if n%args.every != 0 {
			continue
		}

		name := filepath.Join(args.out, fmt.Sprintf("%s_%06d.png", base, index))
		if err := writePng(name, scaleImage(img, args.scale)); err != nil {
			return err
		}
		if !args.quiet {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", name)
		}
	}
}

// scaleImage resizes with nearest neighbor so effect edges stay sharp.
func scaleImage(img *image.RGBA, scale float64) image.Image {
	if scale == 1 {
		return img
	}
	bounds := img.Bounds()
	w := max(1, int(float64(bounds.Dx())*scale+0.5))
	h := max(1, int(float64(bounds.Dy())*scale+0.5))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

func writePng(name string, img image.Image) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	if err := png.Encode(w, img); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
