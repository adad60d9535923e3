package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"pingpong-gl/libio"
)

func createInfoCommand() *command {
	flags := flag.NewFlagSet("info", flag.ExitOnError)
	return &command{
		Name:  "info",
		Usage: "file",
		Help:  "print the capture header and frame count",
		Flags: flags,
		Run: func(self *command) error {
			if self.Flags.NArg() != 1 {
				return errUsage
			}
			summary, err := summarize(self.Flags.Arg(0))
			if err != nil {
				return err
			}
			fmt.Println(summary)
			return nil
		},
	}
}

type captureSummary struct {
	Path        string
	Header      libio.CaptureHeader
	Frames      int
	First, Last uint64
}

func (s captureSummary) String() string {
	text := fmt.Sprintf("%s: %dx%d, %v, version %d, %d frames",
		s.Path, s.Header.Width, s.Header.Height, s.Header.Compression, s.Header.Version, s.Frames)
	if s.Frames > 0 {
		text += fmt.Sprintf(" (ticks %d..%d)", s.First, s.Last)
	}
	return text
}

func summarize(path string) (captureSummary, error) {
	file, err := os.Open(path)
	if err != nil {
		return captureSummary{}, err
	}
	defer closeQuietly(file)

	reader, err := libio.NewCaptureReader(bufio.NewReader(file))
	if err != nil {
		return captureSummary{}, err
	}

	summary := captureSummary{Path: path, Header: reader.Header()}
	for {
		index, _, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, err
		}
		if summary.Frames == 0 {
			summary.First = index
		}
		summary.Last = index
		summary.Frames++
	}
}
