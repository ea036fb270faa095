// Package langdetect guesses the shading language of a stage body. It is
// used to flag bodies that were pasted from HLSL or WGSL sources into a
// combined GLSL shader.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language is a detected shading language.
type Language string

// Detectable languages.
const (
	GLSL Language = "glsl"
	HLSL Language = "hlsl"
	WGSL Language = "wgsl"
	Text Language = "text"
)

// classifierCandidates limits the enry classifier to languages a shader body
// could plausibly be written in.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{"GLSL", "HLSL", "C"}

// Detect returns the language of body, or Text when it cannot tell.
func Detect(body []byte) Language {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Text
	}

	if lang := detectByPattern(string(trimmed)); lang != "" {
		return lang
	}

	lang, safe := enry.GetLanguageByClassifier(trimmed, classifierCandidates)
	if !safe {
		return Text
	}
	switch lang {
	case "GLSL", "C":
		// C-like bodies without HLSL markers are treated as GLSL.
		return GLSL
	case "HLSL":
		return HLSL
	default:
		return Text
	}
}

// IsGLSL reports whether body looks like GLSL or is too short to judge.
func IsGLSL(body []byte) bool {
	lang := Detect(body)
	return lang == GLSL || lang == Text
}

func detectByPattern(src string) Language {
	if lang := detectWGSL(src); lang != "" {
		return lang
	}
	if lang := detectHLSL(src); lang != "" {
		return lang
	}
	return detectGLSL(src)
}

// detectWGSL looks for attributes and declarations only WGSL has.
func detectWGSL(src string) Language {
	if strings.Contains(src, "@vertex") ||
		strings.Contains(src, "@fragment") ||
		strings.Contains(src, "@builtin(") ||
		strings.Contains(src, "var<uniform>") ||
		(strings.Contains(src, "fn ") && strings.Contains(src, "->")) {
		return WGSL
	}
	return ""
}

// detectHLSL looks for semantics and declarations only HLSL has.
func detectHLSL(src string) Language {
	if strings.Contains(src, "SV_Position") ||
		strings.Contains(src, "SV_POSITION") ||
		strings.Contains(src, "SV_Target") ||
		strings.Contains(src, "cbuffer ") ||
		strings.Contains(src, ": register(") {
		return HLSL
	}
	return ""
}

// detectGLSL looks for built-ins and qualifiers specific to GLSL.
func detectGLSL(src string) Language {
	if strings.Contains(src, "gl_Position") ||
		strings.Contains(src, "gl_FragColor") ||
		strings.Contains(src, "gl_FragCoord") ||
		strings.Contains(src, "layout(") ||
		strings.Contains(src, "layout (") ||
		strings.Contains(src, "texture(") {
		return GLSL
	}
	return ""
}
