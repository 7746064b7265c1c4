package jsonx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializer_Serialize(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Serializer{}.Serialize(c, map[string]string{"status": "ok"}, ""))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSerializer_Deserialize(t *testing.T) {
	e := echo.New()

	var out struct {
		Origin string `json:"origin"`
	}
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"origin":"NYC"}`)), httptest.NewRecorder())
	require.NoError(t, Serializer{}.Deserialize(c, &out))
	assert.Equal(t, "NYC", out.Origin)

	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"origin":`)), httptest.NewRecorder())
	err := Serializer{}.Deserialize(c, &out)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "Invalid request body", httpErr.Message)
}
