package main

import (
	"fmt"

	"pingpong-gl/effects"
	"pingpong-gl/libutil"
	"pingpong-gl/pipeline"

	"github.com/inkyblackness/imgui-go/v4"
)

const dragStep = 0.001

// drawParamsPanel edits a copy of the current snapshot and publishes it when a field changed.
func drawParamsPanel(store *effects.ParamStore, p *pipeline.Pipeline) {
	params := store.Load()

	imgui.SetNextWindowPosV(imgui.Vec2{X: 8, Y: 8}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV("Transform", nil, imgui.WindowFlagsAlwaysAutoResize)
	changed := false
	changed = dragFloat("X Offset", &params.XOffset) || changed
	changed = dragFloat("Y Offset", &params.YOffset) || changed
	changed = dragFloat("Angle", &params.Rotation) || changed
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("%.1f deg", params.Rotation*libutil.Rad2Deg))
	changed = dragFloat("Scale X", &params.ScaleX) || changed
	changed = dragFloat("Scale Y", &params.ScaleY) || changed
	if imgui.Button("Reset") {
		params = effects.DefaultParams()
		changed = true
	}
	imgui.SameLine()
	if imgui.Button("Identity") {
		params = effects.IdentityParams()
		changed = true
	}
	w, h := p.Size()
	imgui.Text(fmt.Sprintf("%v %dx%d frame %d", p.Device().Name(), w, h, p.Frame()))
	imgui.Text(fmt.Sprintf("%.1f fps", imgui.CurrentIO().Framerate()))
	imgui.End()

	if changed {
		store.Store(params)
	}
}

func dragFloat(label string, v *float32) bool {
	return imgui.DragFloatV(label, v, dragStep, 0, 0, "%.3f", imgui.SliderFlagsNone)
}
