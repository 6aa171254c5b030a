package hostfuncs

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/reglet-dev/reglet-codec/codec"
	domainerrors "github.com/reglet-dev/reglet-codec/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponseConstructors(t *testing.T) {
	tests := []struct {
		name string
		resp ErrorResponse
		want string
	}{
		{
			name: "validation",
			resp: NewValidationError("failed to unmarshal request"),
			want: `{"error":"VALIDATION_ERROR","message":"failed to unmarshal request","code":400}`,
		},
		{
			name: "not found",
			resp: NewNotFoundError("utf8_decode"),
			want: `{"error":"NOT_FOUND","message":"unknown host function: utf8_decode","code":404}`,
		},
		{
			name: "internal",
			resp: NewInternalError("guest allocate failed"),
			want: `{"error":"INTERNAL_ERROR","message":"guest allocate failed","code":500}`,
		},
		{
			name: "panic with error",
			resp: NewPanicError(json.Unmarshal(nil, nil)),
			want: `{"error":"INTERNAL_ERROR","message":"panic: unexpected end of JSON input","code":500}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.resp.ToJSON()
			require.NotNil(t, got)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
		wantCode int
	}{
		{
			name:     "request size",
			err:      &domainerrors.RequestSizeError{Size: 10, Limit: 5},
			wantType: "VALIDATION_ERROR",
			wantCode: 400,
		},
		{
			name:     "unknown encoding",
			err:      fmt.Errorf("decode: %w", codec.ErrUnknownEncoding),
			wantType: "VALIDATION_ERROR",
			wantCode: 400,
		},
		{
			name:     "validation error",
			err:      &domainerrors.ValidationError{Function: "hex_decode", Err: fmt.Errorf("bad")},
			wantType: "VALIDATION_ERROR",
			wantCode: 400,
		},
		{
			name:     "generic",
			err:      fmt.Errorf("guest memory read failed"),
			wantType: "INTERNAL_ERROR",
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewErrorResponse(tt.err)
			assert.Equal(t, tt.wantType, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.err.Error(), resp.Message)
		})
	}
}
