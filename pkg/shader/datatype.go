package shader

import (
	"fmt"
	"sort"
)

// DataType is the GLSL type of a declared uniform parameter.
// The zero value is DataTypeInvalid and never comes out of a successful parse.
type DataType int

// Supported uniform data types.
const (
	DataTypeInvalid DataType = iota
	Bool
	Bool2
	Bool3
	Bool4
	Int
	Int2
	Int3
	Int4
	UInt
	UInt2
	UInt3
	UInt4
	Float
	Float2
	Float3
	Float4
	Double
	Double2
	Double3
	Double4
	Mat3
	Mat4
	Sampler2D
)

// dataTypeInfo describes one entry of the type table.
type dataTypeInfo struct {
	name    string
	keyword string
	glEnum  uint32
}

// dataTypeInfos is indexed by DataType. The GL enum values are the ones
// glGetActiveUniform reports for the type.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dataTypeInfos = [...]dataTypeInfo{
	DataTypeInvalid: {name: "Invalid"},
	Bool:            {name: "Bool", keyword: "bool", glEnum: 0x8B56},
	Bool2:           {name: "Bool2", keyword: "bvec2", glEnum: 0x8B57},
	Bool3:           {name: "Bool3", keyword: "bvec3", glEnum: 0x8B58},
	Bool4:           {name: "Bool4", keyword: "bvec4", glEnum: 0x8B59},
	Int:             {name: "Int", keyword: "int", glEnum: 0x1404},
	Int2:            {name: "Int2", keyword: "ivec2", glEnum: 0x8B53},
	Int3:            {name: "Int3", keyword: "ivec3", glEnum: 0x8B54},
	Int4:            {name: "Int4", keyword: "ivec4", glEnum: 0x8B55},
	UInt:            {name: "UInt", keyword: "uint", glEnum: 0x1405},
	UInt2:           {name: "UInt2", keyword: "uvec2", glEnum: 0x8DC6},
	UInt3:           {name: "UInt3", keyword: "uvec3", glEnum: 0x8DC7},
	UInt4:           {name: "UInt4", keyword: "uvec4", glEnum: 0x8DC8},
	Float:           {name: "Float", keyword: "float", glEnum: 0x1406},
	Float2:          {name: "Float2", keyword: "vec2", glEnum: 0x8B50},
	Float3:          {name: "Float3", keyword: "vec3", glEnum: 0x8B51},
	Float4:          {name: "Float4", keyword: "vec4", glEnum: 0x8B52},
	Double:          {name: "Double", keyword: "double", glEnum: 0x140A},
	Double2:         {name: "Double2", keyword: "dvec2", glEnum: 0x8FFC},
	Double3:         {name: "Double3", keyword: "dvec3", glEnum: 0x8FFD},
	Double4:         {name: "Double4", keyword: "dvec4", glEnum: 0x8FFE},
	Mat3:            {name: "Mat3", keyword: "mat3", glEnum: 0x8B5B},
	Mat4:            {name: "Mat4", keyword: "mat4", glEnum: 0x8B5C},
	Sampler2D:       {name: "Sampler2D", keyword: "sampler2D", glEnum: 0x8B5E},
}

// typeTable maps a GLSL type keyword to its DataType. Built once at package
// initialization and never written afterwards.
//
//nolint:gochecknoglobals // Read-only lookup table.
var typeTable = buildTypeTable()

func buildTypeTable() map[string]DataType {
	table := make(map[string]DataType, len(dataTypeInfos)-1)
	for dt, info := range dataTypeInfos {
		if info.keyword == "" {
			continue
		}
		table[info.keyword] = DataType(dt)
	}
	return table
}

// LookupType resolves a GLSL type keyword such as "vec3" or "sampler2D".
// Matching is exact and case-sensitive. Unknown keywords return an error
// wrapping ErrUnknownType.
func LookupType(keyword string) (DataType, error) {
	dt, ok := typeTable[keyword]
	if !ok {
		return DataTypeInvalid, fmt.Errorf("%w: %q", ErrUnknownType, keyword)
	}
	return dt, nil
}

// TypeKeywords returns every recognized type keyword, sorted.
func TypeKeywords() []string {
	keywords := make([]string, 0, len(typeTable))
	for keyword := range typeTable {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	return keywords
}

// String returns the type name, e.g. "Float3".
func (d DataType) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("DataType(%d)", int(d))
	}
	return dataTypeInfos[d].name
}

// Keyword returns the GLSL keyword for the type, e.g. "vec3".
// Returns an empty string for invalid types.
func (d DataType) Keyword() string {
	if !d.IsValid() {
		return ""
	}
	return dataTypeInfos[d].keyword
}

// GLEnum returns the OpenGL type enum for the type (GL_FLOAT_VEC3 for Float3).
func (d DataType) GLEnum() uint32 {
	if !d.IsValid() {
		return 0
	}
	return dataTypeInfos[d].glEnum
}

// IsValid reports whether d is one of the supported types.
func (d DataType) IsValid() bool {
	return d > DataTypeInvalid && int(d) < len(dataTypeInfos)
}

// MarshalText implements encoding.TextMarshaler using the type name.
func (d DataType) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(d))
	}
	return []byte(d.String()), nil
}
