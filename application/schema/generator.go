// Package schema generates JSON schemas for host function requests.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/reglet-dev/reglet-codec/hostfuncs"
	"github.com/reglet-dev/reglet-codec/log"
	"github.com/reglet-dev/reglet-codec/wireformat"
)

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// requestTypes maps each built-in host function to its request type.
var requestTypes = map[string]any{
	hostfuncs.FuncBase64Decode:      wireformat.DecodeRequestWire{},
	hostfuncs.FuncBase64DecodedSize: wireformat.SizeRequestWire{},
	hostfuncs.FuncHexDecode:         wireformat.DecodeRequestWire{},
	hostfuncs.FuncStringEncode:      wireformat.StringEncodeRequestWire{},
	hostfuncs.FuncStringDecode:      wireformat.StringDecodeRequestWire{},
	hostfuncs.FuncLogMessage:        log.LogMessageWire{},
}

// HostFunctionSchemas returns the request schema of every built-in host
// function, keyed by function name.
func HostFunctionSchemas() (map[string][]byte, error) {
	out := make(map[string][]byte, len(requestTypes))
	for name, v := range requestTypes {
		s, err := GenerateSchema(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}
