package shader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/shadersplit/pkg/shader"
)

func TestLookupType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keyword string
		want    shader.DataType
		glEnum  uint32
	}{
		{"bool", shader.Bool, 0x8B56},
		{"bvec4", shader.Bool4, 0x8B59},
		{"int", shader.Int, 0x1404},
		{"ivec3", shader.Int3, 0x8B54},
		{"uint", shader.UInt, 0x1405},
		{"uvec2", shader.UInt2, 0x8DC6},
		{"float", shader.Float, 0x1406},
		{"vec3", shader.Float3, 0x8B51},
		{"vec4", shader.Float4, 0x8B52},
		{"double", shader.Double, 0x140A},
		{"dvec4", shader.Double4, 0x8FFE},
		{"mat3", shader.Mat3, 0x8B5B},
		{"mat4", shader.Mat4, 0x8B5C},
		{"sampler2D", shader.Sampler2D, 0x8B5E},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			t.Parallel()

			got, err := shader.LookupType(tt.keyword)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.keyword, got.Keyword())
			assert.Equal(t, tt.glEnum, got.GLEnum())
		})
	}
}

func TestLookupType_Unknown(t *testing.T) {
	t.Parallel()

	for _, keyword := range []string{"frobnicate", "Vec3", "sampler2d", "mat2", ""} {
		t.Run(keyword, func(t *testing.T) {
			t.Parallel()

			got, err := shader.LookupType(keyword)
			require.ErrorIs(t, err, shader.ErrUnknownType)
			assert.Equal(t, shader.DataTypeInvalid, got)
		})
	}
}

func TestTypeKeywords(t *testing.T) {
	t.Parallel()

	keywords := shader.TypeKeywords()
	assert.Len(t, keywords, 23)
	assert.IsNonDecreasing(t, keywords)
	assert.Contains(t, keywords, "sampler2D")
}

func TestDataType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Float3", shader.Float3.String())
	assert.Equal(t, "Sampler2D", shader.Sampler2D.String())
	assert.Equal(t, "DataType(0)", shader.DataTypeInvalid.String())
	assert.Empty(t, shader.DataTypeInvalid.Keyword())
	assert.False(t, shader.DataTypeInvalid.IsValid())
	assert.False(t, shader.DataType(99).IsValid())
}

func TestDataType_MarshalText(t *testing.T) {
	t.Parallel()

	text, err := shader.Mat4.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Mat4", string(text))

	_, err = shader.DataTypeInvalid.MarshalText()
	assert.ErrorIs(t, err, shader.ErrUnknownType)
}
