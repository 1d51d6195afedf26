package shader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
)

// fakeDevice emulates just enough of a GL driver: a stage compiles when its
// source declares a version and a main function, a program links when every
// attached stage compiled, and "uniform mat4 name;" declarations are active.
type fakeDevice struct {
	next     uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32][]uint32

	deletedShaders  []uint32
	deletedPrograms []uint32
	bound           uint32
	lookups         int
	uploads         map[int32]mgl32.Mat4
}

type fakeShader struct {
	stage    Stage
	compiled bool
	uniforms []string
}

var uniformDecl = regexp.MustCompile(`uniform\s+mat4\s+(\w+)\s*;`)

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		shaders:  make(map[uint32]*fakeShader),
		programs: make(map[uint32][]uint32),
		uploads:  make(map[int32]mgl32.Mat4),
	}
}

func (d *fakeDevice) CreateShader(stage Stage) uint32 {
	d.next++
	d.shaders[d.next] = &fakeShader{stage: stage}
	return d.next
}

func (d *fakeDevice) CompileShader(shader uint32, source string) (bool, string) {
	sh := d.shaders[shader]
	if !strings.Contains(source, "#version") || !strings.Contains(source, "void main") {
		return false, "ERROR: 0:1: syntax error\n"
	}
	sh.compiled = true
	for _, m := range uniformDecl.FindAllStringSubmatch(source, -1) {
		sh.uniforms = append(sh.uniforms, m[1])
	}
	return true, ""
}

func (d *fakeDevice) DeleteShader(shader uint32) {
	d.deletedShaders = append(d.deletedShaders, shader)
}

func (d *fakeDevice) CreateProgram() uint32 {
	d.next++
	d.programs[d.next] = nil
	return d.next
}

func (d *fakeDevice) AttachShader(program, shader uint32) {
	d.programs[program] = append(d.programs[program], shader)
}

func (d *fakeDevice) LinkProgram(program uint32) (bool, string) {
	for _, id := range d.programs[program] {
		if !d.shaders[id].compiled {
			return false, "Link error: shader not compiled"
		}
	}
	return true, ""
}

func (d *fakeDevice) DeleteProgram(program uint32) {
	d.deletedPrograms = append(d.deletedPrograms, program)
}

func (d *fakeDevice) UseProgram(program uint32) {
	d.bound = program
}

func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	d.lookups++
	loc := int32(0)
	for _, id := range d.programs[program] {
		for _, u := range d.shaders[id].uniforms {
			if u == name {
				return loc
			}
			loc++
		}
	}
	return -1
}

func (d *fakeDevice) UniformMatrix4(location int32, m mgl32.Mat4) {
	d.uploads[location] = m
}

const vertexSrc = `#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 mvp;
void main() { gl_Position = mvp * vec4(aPos, 1.0); }
`

const fragmentSrc = `#version 410 core
out vec4 FragColor;
void main() { FragColor = vec4(0.6, 0.45, 0.3, 1.0); }
`

func testSources() fstest.MapFS {
	return fstest.MapFS{
		"shaders/terrain.vert": {Data: []byte(vertexSrc)},
		"shaders/terrain.frag": {Data: []byte(fragmentSrc)},
		"shaders/broken.frag":  {Data: []byte("#version 410 core\nvoid mian() {}\n")},
	}
}

func TestNewValidProgram(t *testing.T) {
	dev := newFakeDevice()
	p, err := New(dev, testSources(), "shaders/terrain.vert", "shaders/terrain.frag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Status().OK() {
		t.Errorf("expected all steps to succeed, got %+v", p.Status())
	}
	if p.ID() == 0 {
		t.Error("expected a program handle")
	}

	// Stage objects are released after linking
	if len(dev.deletedShaders) != 2 {
		t.Errorf("expected 2 deleted shaders, got %d", len(dev.deletedShaders))
	}

	p.Use()
	if dev.bound != p.ID() {
		t.Errorf("expected program %d bound, got %d", p.ID(), dev.bound)
	}

	m := mgl32.Translate3D(1, 2, 3)
	p.SetMat4("mvp", m)
	if got, ok := dev.uploads[0]; !ok || got != m {
		t.Errorf("expected mvp upload at location 0, got %v (ok=%v)", got, ok)
	}
}

func TestSetMat4CachesLocations(t *testing.T) {
	dev := newFakeDevice()
	p, err := New(dev, testSources(), "shaders/terrain.vert", "shaders/terrain.frag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Use()

	for range 5 {
		p.SetMat4("mvp", mgl32.Ident4())
		p.SetMat4("uMissing", mgl32.Ident4())
	}
	if dev.lookups != 2 {
		t.Errorf("expected 2 location lookups, got %d", dev.lookups)
	}
}

func TestSetMat4UnknownUniformIsNoop(t *testing.T) {
	dev := newFakeDevice()
	p, _ := New(dev, testSources(), "shaders/terrain.vert", "shaders/terrain.frag")
	p.Use()

	p.SetMat4("uDoesNotExist", mgl32.Ident4())
	if len(dev.uploads) != 0 {
		t.Errorf("expected no uploads, got %d", len(dev.uploads))
	}
}

func TestNewMissingFile(t *testing.T) {
	dev := newFakeDevice()
	p, err := New(dev, testSources(), "shaders/terrain.vert", "shaders/nope.frag")
	if p == nil {
		t.Fatal("expected a program even when a source is missing")
	}
	if err == nil {
		t.Fatal("expected a build error")
	}

	if !errors.Is(err, ErrSourceRead) {
		t.Errorf("expected ErrSourceRead in %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in %v", err)
	}
	if !errors.Is(err, ErrCompile) {
		t.Errorf("empty source should fail to compile: %v", err)
	}

	st := p.Status()
	if !st.VertexCompiled {
		t.Error("vertex stage should still compile")
	}
	if st.FragmentCompiled {
		t.Error("fragment stage should report compile failure")
	}

	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BuildError, got %T", err)
	}
	if !be.Failed(StageFragment, ErrSourceRead) || !be.Failed(StageFragment, ErrCompile) {
		t.Errorf("fragment failures not reported: %v", be)
	}
	if be.Failed(StageVertex, ErrCompile) {
		t.Errorf("vertex stage wrongly reported: %v", be)
	}

	// Use must not crash on the unusable program
	p.Use()
	p.Close()
}

func TestNewCompileFailureStillLinks(t *testing.T) {
	dev := newFakeDevice()
	p, err := New(dev, testSources(), "shaders/terrain.vert", "shaders/broken.frag")
	if err == nil {
		t.Fatal("expected a build error")
	}
	if !errors.Is(err, ErrCompile) || !errors.Is(err, ErrLink) {
		t.Errorf("expected compile and link errors, got %v", err)
	}
	if errors.Is(err, ErrSourceRead) {
		t.Errorf("source was readable: %v", err)
	}
	if p.Status().Linked {
		t.Error("link should fail")
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("driver log not surfaced: %v", err)
	}
	if len(dev.programs[p.ID()]) != 2 {
		t.Errorf("both stages should be attached, got %d", len(dev.programs[p.ID()]))
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	dev := newFakeDevice()
	p, _ := New(dev, testSources(), "missing.vert", "missing.frag")
	id := p.ID()

	p.Close()
	p.Close()

	if len(dev.deletedPrograms) != 1 || dev.deletedPrograms[0] != id {
		t.Errorf("expected program %d deleted once, got %v", id, dev.deletedPrograms)
	}
	if p.ID() != 0 {
		t.Errorf("expected handle reset, got %d", p.ID())
	}
}

func TestStageString(t *testing.T) {
	tests := map[Stage]string{
		StageVertex:   "vertex",
		StageFragment: "fragment",
		Stage(0):      "program",
	}
	for stage, want := range tests {
		if got := stage.String(); got != want {
			t.Errorf("Stage(%d).String() = %q, want %q", stage, got, want)
		}
	}
}

func TestNewFromOSFiles(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "terrain.vert")
	frag := filepath.Join(dir, "terrain.frag")
	if err := os.WriteFile(vert, []byte(vertexSrc), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(frag, []byte(fragmentSrc), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := New(newFakeDevice(), OSFiles, vert, frag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Status().OK() {
		t.Errorf("expected success, got %+v", p.Status())
	}

	_, err = New(newFakeDevice(), OSFiles, vert, filepath.Join(dir, "gone.frag"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}
