package gldevice

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	vertexShaderSource = `
		#version 410
		layout(location = 0) in vec3 position;
		layout(location = 1) in vec3 normal;
		layout(location = 2) in vec2 uv;
		uniform mat4 world;
		uniform mat4 viewProj;
		out vec3 fragNormal;
		out vec2 fragUV;
		void main() {
			fragNormal = mat3(world) * normal;
			fragUV = uv;
			gl_Position = viewProj * world * vec4(position, 1.0);
		}
	` + "\x00"

	fragmentShaderSource = `
		#version 410
		in vec3 fragNormal;
		in vec2 fragUV;
		uniform sampler2D tex;
		uniform bool useTexture;
		out vec4 frag_colour;
		void main() {
			vec3 light = normalize(vec3(0.4, 1.0, 0.6));
			float diffuse = 0.3 + 0.7 * max(dot(normalize(fragNormal), light), 0.0);
			vec4 base = useTexture ? texture(tex, fragUV) : vec4(1, 1, 0, 1); // yellow
			frag_colour = vec4(base.rgb * diffuse, base.a);
		}
	` + "\x00"
)

type stage struct {
	name   string
	kind   uint32
	source string
}

// newProgram compiles and links the stages. Shader objects are released
// once linked; nothing leaks on failure.
func newProgram(stages ...stage) (uint32, error) {
	program := gl.CreateProgram()
	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, sh := range shaders {
			gl.DeleteShader(sh)
		}
	}()

	for _, st := range stages {
		sh, err := compileShader(st)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		shaders = append(shaders, sh)
		gl.AttachShader(program, sh)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", msg)
	}
	return program, nil
}

func compileShader(st stage) (uint32, error) {
	sh := gl.CreateShader(st.kind)
	csources, free := gl.Strs(st.source)
	gl.ShaderSource(sh, 1, csources, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(sh, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("compile %s shader: %s", st.name, msg)
	}
	return sh, nil
}

// infoLog reads the compile or link log of a shader or program object.
func infoLog(obj uint32, param func(uint32, uint32, *int32), read func(uint32, int32, *int32, *uint8)) string {
	var n int32
	param(obj, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return "no log"
	}
	buf := strings.Repeat("\x00", int(n+1))
	read(obj, n, nil, gl.Str(buf))
	return strings.TrimSpace(strings.TrimRight(buf, "\x00"))
}
