package main

import (
	"log"
	"runtime"
	"strings"
	"unsafe"

	"pingpong-gl/config"
	"pingpong-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/exp/slices"
)

func initGLFW(cfg *config.Config) (*glfw.Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return win, nil
}

// extensionSuffixes mark vendor entry points that are expected to be missing.
var extensionSuffixes = []string{"ARB", "EXT", "KHR", "NV", "NVX", "AMD", "ATI", "INTEL", "MESA", "APPLE", "OES", "SGI", "SGIS", "SGIX", "SUN", "SUNX", "IBM", "HP", "PGI", "3DFX", "INGR", "GREMEDY"}

// missingProc stands in for functions the driver does not provide, so that
// calling one faults instead of silently jumping to address zero.
var missingProc = unsafe.Pointer(^uintptr(0))

func loadProc(name string) unsafe.Pointer {
	if addr := glfw.GetProcAddress(name); addr != nil {
		return addr
	}
	isExtension := slices.ContainsFunc(extensionSuffixes, func(suffix string) bool {
		return strings.HasSuffix(name, suffix)
	})
	if !isExtension {
		log.Printf("GL function %v is not available\n", name)
	}
	return missingProc
}

func initGL() error {
	if err := gl.InitWithProcAddrFunc(loadProc); err != nil {
		return err
	}
	libgl.EnableDebugOutput()
	libgl.ResetState()
	return nil
}
