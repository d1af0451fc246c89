package compute

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/SharonMathew4/StellarForge/internal/integrate"
	"github.com/SharonMathew4/StellarForge/internal/particle"
)

// OpenGL evaluates accelerations with a compute shader over shader storage
// buffers; integration and collisions stay on the host. It requires a
// current GL 4.3 context, so it reports unavailable until Init succeeds and
// the engine falls back to a CPU backend.
type OpenGL struct {
	program     uint32
	ssboIn      uint32
	ssboOut     uint32
	initialized bool
}

func NewOpenGL() *OpenGL { return &OpenGL{} }

func (b *OpenGL) Name() string {
	if b.initialized {
		return TagOpenGL
	}
	return TagOpenGL + " (not available)"
}

func (b *OpenGL) Available() bool { return b.initialized }

// Init compiles the gravity compute shader and allocates the storage
// buffers. Must be called with a current GL context.
func (b *OpenGL) Init(shaderPath string) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to init opengl: %v", err)
	}

	program, err := createComputeProgram(shaderPath)
	if err != nil {
		return err
	}
	b.program = program

	gl.GenBuffers(1, &b.ssboIn)
	gl.GenBuffers(1, &b.ssboOut)
	b.initialized = true
	return nil
}

func (b *OpenGL) Cleanup() {
	if !b.initialized {
		return
	}
	gl.DeleteBuffers(1, &b.ssboIn)
	gl.DeleteBuffers(1, &b.ssboOut)
	gl.DeleteProgram(b.program)
	b.initialized = false
}

func (b *OpenGL) Step(s *particle.System, p Params, dt float32) {
	if !b.initialized {
		Fallback().Step(s, p, dt)
		return
	}

	n := s.Len()
	if n == 0 {
		return
	}

	// Pack x, y, z, mass per particle.
	in := make([]float32, n*4)
	for i := 0; i < n; i++ {
		in[i*4] = s.Pos[i][0]
		in[i*4+1] = s.Pos[i][1]
		in[i*4+2] = s.Pos[i][2]
		in[i*4+3] = s.Mass[i]
	}

	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.ssboIn)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(in)*4, gl.Ptr(in), gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, b.ssboIn)

	out := make([]float32, n*4)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.ssboOut)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(out)*4, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 1, b.ssboOut)

	gl.UseProgram(b.program)
	gl.Uniform1i(gl.GetUniformLocation(b.program, gl.Str("numParticles\x00")), int32(n))
	gl.Uniform1f(gl.GetUniformLocation(b.program, gl.Str("g\x00")), p.G)
	gl.Uniform1f(gl.GetUniformLocation(b.program, gl.Str("softening\x00")), p.Softening)

	numGroups := (n + 255) / 256
	gl.DispatchCompute(uint32(numGroups), 1, 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)

	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.ssboOut)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, len(out)*4, gl.Ptr(out))

	for i := 0; i < n; i++ {
		s.Acc[i][0] = out[i*4]
		s.Acc[i][1] = out[i*4+1]
		s.Acc[i][2] = out[i*4+2]
	}

	integrate.PositionVerlet(s, dt, 0, n)
	resolveCollisions(s, p)
}

func createComputeProgram(path string) (uint32, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content := string(source) + "\x00"

	shader := gl.CreateShader(gl.COMPUTE_SHADER)
	csources, free := gl.Strs(content)
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
		return 0, fmt.Errorf("failed to compile compute shader: %v", log)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("failed to link program")
	}

	gl.DeleteShader(shader)
	return program, nil
}
