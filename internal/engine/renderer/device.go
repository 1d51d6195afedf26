package renderer

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/excavator/internal/engine/shader"
)

// Device is the OpenGL 4.1 implementation of shader.Device.
// It is only valid on the thread that owns the current context.
type Device struct{}

var _ shader.Device = Device{}

func (Device) CreateShader(stage shader.Stage) uint32 {
	switch stage {
	case shader.StageVertex:
		return gl.CreateShader(gl.VERTEX_SHADER)
	default:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
}

func (Device) CompileShader(sh uint32, source string) (bool, string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLen int32
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
	return false, readInfoLog(logLen, func(buf *uint8) {
		gl.GetShaderInfoLog(sh, logLen, nil, buf)
	})
}

func (Device) DeleteShader(sh uint32) {
	gl.DeleteShader(sh)
}

func (Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Device) AttachShader(program, sh uint32) {
	gl.AttachShader(program, sh)
}

func (Device) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	return false, readInfoLog(logLen, func(buf *uint8) {
		gl.GetProgramInfoLog(program, logLen, nil, buf)
	})
}

func (Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

// readInfoLog reads a driver info log of logLen bytes including the terminator.
func readInfoLog(logLen int32, fill func(*uint8)) string {
	if logLen <= 0 {
		return "no info log"
	}
	buf := make([]byte, logLen)
	fill(&buf[0])
	return strings.TrimRight(string(buf), "\x00")
}
