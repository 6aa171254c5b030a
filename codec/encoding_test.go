package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		name string
		want Encoding
	}{
		{"ascii", ASCII},
		{"UTF8", UTF8},
		{"utf-8", UTF8},
		{"Base64", Base64},
		{"ucs2", UCS2},
		{"ucs-2", UCS2},
		{"utf16le", UCS2},
		{"UTF-16LE", UCS2},
		{"binary", Binary},
		{"latin1", Binary},
		{"hex", Hex},
		{" buffer ", Buffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEncoding(tt.name, Binary))
		})
	}

	t.Run("unknown falls back to default", func(t *testing.T) {
		assert.Equal(t, Binary, ParseEncoding("ebcdic", Binary))
		assert.Equal(t, UTF8, ParseEncoding("", UTF8))
	})
}

func TestEncoding_String(t *testing.T) {
	assert.Equal(t, "hex", Hex.String())
	assert.Equal(t, "binary", Binary.String())
	assert.Equal(t, "Encoding(42)", Encoding(42).String())
	assert.False(t, Encoding(42).Valid())
	assert.True(t, Buffer.Valid())
}

func TestEncoding_TextRoundTrip(t *testing.T) {
	type payload struct {
		Encoding Encoding `json:"encoding"`
	}

	data, err := json.Marshal(payload{Encoding: UCS2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"encoding":"ucs2"}`, string(data))

	var got payload
	require.NoError(t, json.Unmarshal([]byte(`{"encoding":"latin1"}`), &got))
	assert.Equal(t, Binary, got.Encoding)

	err = json.Unmarshal([]byte(`{"encoding":"rot13"}`), &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEncoding)

	_, err = json.Marshal(payload{Encoding: Encoding(99)})
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}
