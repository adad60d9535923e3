package libgl

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var shaderNamePattern = regexp.MustCompile(`(?m)^//meta:name\s+(.+)$`)

// UnboundShaderPipeline is a program pipeline of a separable vertex and a
// separable fragment program. It owns both programs.
type UnboundShaderPipeline interface {
	LabeledGlObject
	Id() uint32
	Vertex() ShaderProgram
	Fragment() ShaderProgram
	Bind() BoundShaderPipeline
	Delete()
}

type BoundShaderPipeline interface {
	UnboundShaderPipeline
}

type shaderPipeline struct {
	glId     uint32
	vertex   *program
	fragment *program
}

// CompilePipeline links both sources into separable programs and combines them.
// Errors carry the program info log.
func CompilePipeline(label, vertSrc, fragSrc string) (UnboundShaderPipeline, error) {
	vert, err := compileProgram(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", label, err)
	}
	frag, err := compileProgram(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		vert.Delete()
		return nil, fmt.Errorf("%v: %w", label, err)
	}

	var id uint32
	gl.CreateProgramPipelines(1, &id)
	gl.UseProgramStages(id, gl.VERTEX_SHADER_BIT, vert.glId)
	gl.UseProgramStages(id, gl.FRAGMENT_SHADER_BIT, frag.glId)
	setObjectLabel(gl.PROGRAM_PIPELINE, id, label)

	return &shaderPipeline{glId: id, vertex: vert, fragment: frag}, nil
}

func (sp *shaderPipeline) Id() uint32 {
	return sp.glId
}

func (sp *shaderPipeline) SetDebugLabel(label string) {
	setObjectLabel(gl.PROGRAM_PIPELINE, sp.glId, label)
}

func (sp *shaderPipeline) Vertex() ShaderProgram {
	return sp.vertex
}

func (sp *shaderPipeline) Fragment() ShaderProgram {
	return sp.fragment
}

func (sp *shaderPipeline) Bind() BoundShaderPipeline {
	State.BindProgramPipeline(sp.glId)
	return BoundShaderPipeline(sp)
}

func (sp *shaderPipeline) Delete() {
	if State.ProgramPipeline == sp.glId {
		State.ProgramPipeline = 0
	}
	gl.DeleteProgramPipelines(1, &sp.glId)
	sp.glId = 0
	sp.vertex.Delete()
	sp.fragment.Delete()
}

type ShaderProgram interface {
	Id() uint32
	// Name comes from a "//meta:name <name>" line in the source.
	Name() string
	SetUniform(name string, value any)
}

type program struct {
	glId      uint32
	name      string
	locations map[string]int32
}

func compileProgram(source string, stage uint32) (*program, error) {
	name := "untitled"
	if m := shaderNamePattern.FindStringSubmatch(source); m != nil {
		name = strings.TrimSpace(m[1])
	}

	csrc, free := gl.Strs(source + "\x00")
	id := gl.CreateShaderProgramv(stage, 1, csrc)
	free()

	var status int32
	if gl.GetProgramiv(id, gl.LINK_STATUS, &status); status == gl.FALSE {
		info := programInfoLog(id)
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%v shader did not link: %v", name, info)
	}
	gl.ValidateProgram(id)
	if gl.GetProgramiv(id, gl.VALIDATE_STATUS, &status); status == gl.FALSE {
		info := programInfoLog(id)
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%v shader did not validate: %v", name, info)
	}
	setObjectLabel(gl.PROGRAM, id, name)

	return &program{glId: id, name: name, locations: map[string]int32{}}, nil
}

func programInfoLog(id uint32) string {
	var length int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	buf := make([]byte, length)
	gl.GetProgramInfoLog(id, length, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

func (prog *program) Id() uint32 {
	return prog.glId
}

func (prog *program) Name() string {
	return prog.name
}

func (prog *program) Delete() {
	gl.DeleteProgram(prog.glId)
	prog.glId = 0
}

func (prog *program) location(name string) int32 {
	loc, ok := prog.locations[name]
	if !ok {
		loc = gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
		prog.locations[name] = loc
		if loc == -1 {
			log.Printf("%v shader has no uniform %q\n", prog.name, name)
		}
	}
	return loc
}

// SetUniform sets a uniform of this program without binding it. Unknown
// names are reported once and then ignored.
func (prog *program) SetUniform(name string, value any) {
	loc := prog.location(name)
	if loc == -1 {
		return
	}
	switch v := value.(type) {
	case float32:
		gl.ProgramUniform1f(prog.glId, loc, v)
	case int32:
		gl.ProgramUniform1i(prog.glId, loc, v)
	case mgl32.Vec2:
		gl.ProgramUniform2fv(prog.glId, loc, 1, &v[0])
	case mgl32.Vec3:
		gl.ProgramUniform3fv(prog.glId, loc, 1, &v[0])
	case mgl32.Mat4:
		gl.ProgramUniformMatrix4fv(prog.glId, loc, 1, false, &v[0])
	default:
		panic(fmt.Sprintf("unsupported uniform type %T", value))
	}
}
