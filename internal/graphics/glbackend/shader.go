package glbackend

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"mini-ra/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Shader implements graphics.Shader over a compiled GL program. Uniform
// locations are cached per name; sampler names are assigned texture units
// in first-use order and their textures are bound during Prepare.
type Shader struct {
	id uint32

	locations map[string]int32
	units     map[string]int32
	textures  map[int32]uint32
	nextUnit  int32
}

// NewShader compiles and links a program from vertex and fragment shader
// source files.
func NewShader(vertexPath, fragmentPath string) (*Shader, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("could not read vertex shader file: %v", err)
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("could not read fragment shader file: %v", err)
	}

	program, err := compileProgram(string(vertexSource), string(fragmentSource))
	if err != nil {
		return nil, err
	}

	return &Shader{
		id:        program,
		locations: make(map[string]int32),
		units:     make(map[string]int32),
		textures:  make(map[int32]uint32),
	}, nil
}

func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.id, gl.Str(name+"\x00"))
	s.locations[name] = loc
	return loc
}

// SetTexture queues a texture for the named sampler. The binding becomes
// active at the next Prepare.
func (s *Shader) SetTexture(name string, t graphics.Texture) {
	unit, ok := s.units[name]
	if !ok {
		unit = s.nextUnit
		s.nextUnit++
		s.units[name] = unit
	}

	glt, ok := t.(*Texture)
	if !ok || glt == nil {
		delete(s.textures, unit)
		return
	}
	s.textures[unit] = glt.id
}

// Prepare binds the program, its queued textures and their sampler
// uniforms. Call it before every draw.
func (s *Shader) Prepare() {
	gl.UseProgram(s.id)

	// Stable unit order keeps the binding sequence deterministic.
	units := make([]int, 0, len(s.textures))
	for unit := range s.textures {
		units = append(units, int(unit))
	}
	sort.Ints(units)
	for _, unit := range units {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, s.textures[int32(unit)])
	}
	for name, unit := range s.units {
		gl.Uniform1i(s.location(name), unit)
	}
}

// SetBool sets a boolean uniform
func (s *Shader) SetBool(name string, value bool) {
	var intValue int32
	if value {
		intValue = 1
	}
	gl.UseProgram(s.id)
	gl.Uniform1i(s.location(name), intValue)
}

// SetFloat sets a float uniform
func (s *Shader) SetFloat(name string, value float32) {
	gl.UseProgram(s.id)
	gl.Uniform1f(s.location(name), value)
}

// SetVec2 sets a vector2 uniform
func (s *Shader) SetVec2(name string, x, y float32) {
	gl.UseProgram(s.id)
	gl.Uniform2f(s.location(name), x, y)
}

// SetVec3 sets a vector3 uniform
func (s *Shader) SetVec3(name string, x, y, z float32) {
	gl.UseProgram(s.id)
	gl.Uniform3f(s.location(name), x, y, z)
}

// SetMatrix sets a 4x4 matrix uniform
func (s *Shader) SetMatrix(name string, value *float32) {
	gl.UseProgram(s.id)
	gl.UniformMatrix4fv(s.location(name), 1, false, value)
}

// Dispose deletes the program.
func (s *Shader) Dispose() {
	if s.id != 0 {
		gl.DeleteProgram(s.id)
		s.id = 0
	}
}

// Helper functions
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}
