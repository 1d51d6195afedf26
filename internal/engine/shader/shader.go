// Package shader compiles and links GPU shader programs.
package shader

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/excavator/internal/logger"
)

// Stage identifies a shader stage.
type Stage int

const (
	StageVertex Stage = iota + 1
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "program"
	}
}

// Device is the graphics context a Program is built on.
// All calls must come from the thread that owns the context.
type Device interface {
	CreateShader(stage Stage) uint32
	// CompileShader uploads source and compiles it, returning the compile
	// status and the driver's info log.
	CompileShader(shader uint32, source string) (ok bool, log string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	// LinkProgram links the program, returning the link status and info log.
	LinkProgram(program uint32) (ok bool, log string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// UniformLocation returns -1 for names that are not active uniforms.
	UniformLocation(program uint32, name string) int32
	UniformMatrix4(location int32, m mgl32.Mat4)
}

// Status reports the outcome of each build step.
type Status struct {
	VertexCompiled   bool
	FragmentCompiled bool
	Linked           bool
}

// OK reports whether every step succeeded.
func (s Status) OK() bool {
	return s.VertexCompiled && s.FragmentCompiled && s.Linked
}

// Program is a linked vertex+fragment shader program.
type Program struct {
	dev    Device
	id     uint32
	status Status

	uniforms map[string]int32
}

// New reads both stage sources from sources, compiles them and links them
// into one program.
//
// New always returns a non-nil Program. A failed read leaves that stage with
// empty source; failed stages are still linked. Every failure is collected
// into the returned *BuildError so the caller decides whether to continue
// with a program that may be unusable.
func New(dev Device, sources fs.FS, vertexPath, fragmentPath string) (*Program, error) {
	p := &Program{
		dev:      dev,
		uniforms: make(map[string]int32),
	}

	var errs []error

	vertSrc := readSource(sources, vertexPath, StageVertex, &errs)
	fragSrc := readSource(sources, fragmentPath, StageFragment, &errs)

	vertShader := p.compile(StageVertex, vertexPath, vertSrc, &errs)
	fragShader := p.compile(StageFragment, fragmentPath, fragSrc, &errs)

	p.id = dev.CreateProgram()
	dev.AttachShader(p.id, vertShader)
	dev.AttachShader(p.id, fragShader)

	ok, log := dev.LinkProgram(p.id)
	p.status.Linked = ok
	if !ok {
		errs = append(errs, &StageError{Kind: ErrLink, Log: strings.TrimSpace(log)})
	}

	// Stage objects are not needed once linked
	dev.DeleteShader(vertShader)
	dev.DeleteShader(fragShader)

	if len(errs) > 0 {
		err := &BuildError{Errs: errs}
		logger.Warn("shader program built with errors",
			zap.String("vertex", vertexPath),
			zap.String("fragment", fragmentPath),
			zap.Error(err),
		)
		return p, err
	}

	logger.Debug("shader program linked",
		zap.Uint32("program", p.id),
		zap.String("vertex", vertexPath),
		zap.String("fragment", fragmentPath),
	)
	return p, nil
}

func readSource(sources fs.FS, path string, stage Stage, errs *[]error) string {
	data, err := fs.ReadFile(sources, path)
	if err != nil {
		logger.Warn("cannot read shader source",
			zap.Stringer("stage", stage),
			zap.String("path", path),
			zap.Error(err),
		)
		*errs = append(*errs, &StageError{Stage: stage, Path: path, Kind: ErrSourceRead, Cause: err})
		return ""
	}
	return string(data)
}

func (p *Program) compile(stage Stage, path, source string, errs *[]error) uint32 {
	sh := p.dev.CreateShader(stage)
	ok, log := p.dev.CompileShader(sh, source)

	switch stage {
	case StageVertex:
		p.status.VertexCompiled = ok
	case StageFragment:
		p.status.FragmentCompiled = ok
	}

	if !ok {
		*errs = append(*errs, &StageError{Stage: stage, Path: path, Kind: ErrCompile, Log: strings.TrimSpace(log)})
	}
	return sh
}

// ID returns the program handle, 0 after Close.
func (p *Program) ID() uint32 {
	return p.id
}

// Status returns the compile and link outcome.
func (p *Program) Status() Status {
	return p.status
}

// Use binds the program for subsequent draw calls and uniform uploads.
func (p *Program) Use() {
	p.dev.UseProgram(p.id)
}

// SetMat4 uploads a 4x4 matrix to the named uniform.
// Names that do not resolve to an active uniform are ignored.
// The program must be bound with Use first.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	loc := p.uniformLocation(name)
	if loc < 0 {
		return
	}
	p.dev.UniformMatrix4(loc, m)
}

// uniformLocation returns the cached location for name, looking it up on
// first use. Misses are cached as -1 and reported once.
func (p *Program) uniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := p.dev.UniformLocation(p.id, name)
	if loc < 0 {
		logger.Warn("uniform not active, uploads will be ignored",
			zap.Uint32("program", p.id),
			zap.String("uniform", name),
		)
	}
	p.uniforms[name] = loc
	return loc
}

// Close releases the GPU program. It is safe to call more than once.
func (p *Program) Close() {
	if p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
	clear(p.uniforms)
}

var (
	// ErrSourceRead marks a shader source that could not be read.
	ErrSourceRead = errors.New("shader source unreadable")
	// ErrCompile marks a stage that failed to compile.
	ErrCompile = errors.New("shader compile failed")
	// ErrLink marks a program that failed to link.
	ErrLink = errors.New("program link failed")
)

// StageError describes one failed build step.
type StageError struct {
	Stage Stage
	Path  string
	Kind  error  // ErrSourceRead, ErrCompile or ErrLink
	Log   string // Driver info log, if any
	Cause error
}

func (e *StageError) Error() string {
	var b strings.Builder
	b.WriteString(e.Stage.String())
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	fmt.Fprintf(&b, ": %v", e.Kind)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	if e.Log != "" {
		fmt.Fprintf(&b, ": %s", e.Log)
	}
	return b.String()
}

func (e *StageError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// BuildError collects every failure from building a Program.
type BuildError struct {
	Errs []error
}

func (e *BuildError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "shader: " + strings.Join(msgs, "; ")
}

func (e *BuildError) Unwrap() []error {
	return e.Errs
}

// Failed reports whether the given stage had any error of kind.
func (e *BuildError) Failed(stage Stage, kind error) bool {
	for _, err := range e.Errs {
		var se *StageError
		if errors.As(err, &se) && se.Stage == stage && errors.Is(se.Kind, kind) {
			return true
		}
	}
	return false
}
