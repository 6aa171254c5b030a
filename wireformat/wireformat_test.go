package wireformat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodedInputWire(t *testing.T) {
	narrow := EncodedInputWire{Input: "YWJj"}
	assert.False(t, narrow.Wide())
	assert.Equal(t, 4, narrow.Len())

	wide := EncodedInputWire{Input: "ignored", Units: []uint16{'Y', 'Q'}}
	assert.True(t, wide.Wide())
	assert.Equal(t, 2, wide.Len())
}

func TestDecodeRequestWire_JSON(t *testing.T) {
	var req DecodeRequestWire
	require.NoError(t, json.Unmarshal([]byte(`{"input":"YWJj","capacity":2}`), &req))
	assert.Equal(t, "YWJj", req.Input)
	require.NotNil(t, req.Capacity)
	assert.Equal(t, 2, *req.Capacity)

	req = DecodeRequestWire{}
	require.NoError(t, json.Unmarshal([]byte(`{"units":[89,87,74,106]}`), &req))
	assert.Nil(t, req.Capacity)
	assert.Equal(t, []uint16{'Y', 'W', 'J', 'j'}, req.Units)
}

func TestDecodeResponseWire_JSON(t *testing.T) {
	resp := DecodeResponseWire{Data: []byte("ab"), Written: 2, Expected: 3, Truncated: true}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":"YWI=","written":2,"expected":3,"truncated":true}`, string(data))
}
