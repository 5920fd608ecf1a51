package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Text string `json:"text" validate:"required,max=10"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	decode := func(body string) (sampleRequest, error) {
		var v sampleRequest
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := DecodeJSON(httptest.NewRecorder(), req, &v)
		return v, err
	}

	v, err := decode(`{"text":"hello"}`)
	require.NoError(t, err)
	assert.Equal(t, "hello", v.Text)

	_, err = decode(``)
	assert.ErrorIs(t, err, ErrEmptyBody)

	_, err = decode(`{"text":"hello","extra":1}`)
	assert.Error(t, err)

	_, err = decode(`{"text":"a"}{"text":"b"}`)
	assert.Error(t, err)

	_, err = decode(`{"text":`)
	assert.Error(t, err)
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(sampleRequest{Text: "ok"}))
	assert.Error(t, ValidateRequest(sampleRequest{}))
	assert.Error(t, ValidateRequest(sampleRequest{Text: "much too long"}))
}
