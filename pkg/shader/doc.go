// Package shader splits combined shader sources into per-stage GLSL.
//
// A combined shader is a single text file holding several stages plus the
// metadata they share:
//
//	#pragma version 330 core
//
//	#region parameters
//	uniform vec3 u_Color;
//	uniform float u_Ambient;
//	#endregion
//
//	#shader vertex
//	void main() { ... }
//	#endshader
//
//	#shader fragment
//	void main() { ... }
//	#endshader
//
// Parsing runs in three phases. The scanner walks the source once, line by
// line, recording every raw line, every #pragma directive, and the line spans
// of closed regions and shader blocks. The processor resolves the version
// directive, parses the uniform declarations inside the parameters region,
// and assembles each stage body from its line span. The generator prepends
// the shared preamble (version line, uniform declarations, blank line) to
// every stage body.
//
// Marker detection is a plain substring search on the part of the line that
// precedes any "//" comment. Shader bodies are treated as opaque text.
package shader
