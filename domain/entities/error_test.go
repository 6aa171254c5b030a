package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorDetail_Error(t *testing.T) {
	var nilDetail *ErrorDetail
	assert.Equal(t, "", nilDetail.Error())

	detail := NewErrorDetail("codec", "decode failed").WithCode("hex_decode")
	assert.Equal(t, "codec: decode failed [hex_decode]", detail.Error())

	internal := NewErrorDetail("internal", "oops")
	assert.Equal(t, "oops", internal.Error())

	detail.Wrapped = NewErrorDetail("validation", "bad input")
	assert.Equal(t, "codec: decode failed [hex_decode]: validation: bad input", detail.Error())
}

func TestErrorDetail_WithDetails(t *testing.T) {
	detail := NewErrorDetail("codec", "x").WithDetails(map[string]any{"written": 2})
	assert.Equal(t, 2, detail.Details["written"])
}
