//go:build !wasip1

package schema

import (
	"encoding/json"
	"testing"

	"github.com/reglet-dev/reglet-codec/hostfuncs"
	"github.com/reglet-dev/reglet-codec/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSchema(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	return decoded
}

func TestGenerateSchema_DecodeRequest(t *testing.T) {
	schema, err := GenerateSchema(wireformat.DecodeRequestWire{})
	require.NoError(t, err)

	decoded := decodeSchema(t, schema)
	properties, ok := decoded["properties"].(map[string]any)
	require.True(t, ok, "properties should be a map")

	// Embedded input fields are flattened next to capacity.
	assert.Contains(t, properties, "capacity")
	assert.Contains(t, properties, "input")
	assert.Contains(t, properties, "units")
	assert.NotContains(t, decoded, "required")
}

func TestGenerateSchema_EncodingEnum(t *testing.T) {
	schema, err := GenerateSchema(wireformat.StringEncodeRequestWire{})
	require.NoError(t, err)

	decoded := decodeSchema(t, schema)
	properties := decoded["properties"].(map[string]any)
	encoding := properties["encoding"].(map[string]any)
	assert.ElementsMatch(t,
		[]any{"ascii", "utf8", "base64", "ucs2", "binary", "hex", "buffer"},
		encoding["enum"])

	required, ok := decoded["required"].([]any)
	require.True(t, ok, "required should be an array")
	assert.Contains(t, required, "data")
	assert.Contains(t, required, "encoding")
}

func TestGenerateSchema_EmptyStruct(t *testing.T) {
	type Empty struct{}

	schema, err := GenerateSchema(Empty{})
	require.NoError(t, err)
	assert.NotEmpty(t, decodeSchema(t, schema))
}

func TestHostFunctionSchemas(t *testing.T) {
	schemas, err := HostFunctionSchemas()
	require.NoError(t, err)

	for _, name := range []string{
		hostfuncs.FuncBase64Decode,
		hostfuncs.FuncBase64DecodedSize,
		hostfuncs.FuncHexDecode,
		hostfuncs.FuncStringEncode,
		hostfuncs.FuncStringDecode,
		hostfuncs.FuncLogMessage,
	} {
		s, ok := schemas[name]
		require.True(t, ok, name)
		assert.NotEmpty(t, decodeSchema(t, s), name)
	}
	assert.Contains(t, string(schemas[hostfuncs.FuncLogMessage]), "level")
}
