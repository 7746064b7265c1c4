// Package jsonx is the single JSON codec of the application.
//
// It wraps json-iterator in its standard-library compatible mode, so field
// tags and error behavior match encoding/json, and exposes an Echo
// JSONSerializer built on it.
package jsonx

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

// API is the shared json-iterator configuration.
var API = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal encodes v with API.
func Marshal(v any) ([]byte, error) {
	return API.Marshal(v)
}

// Unmarshal decodes data into v with API.
func Unmarshal(data []byte, v any) error {
	return API.Unmarshal(data, v)
}

// Serializer implements echo.JSONSerializer with json-iterator.
//
// Register it once on the Echo instance:
//
//	e.JSONSerializer = jsonx.Serializer{}
type Serializer struct{}

// Serialize writes i as JSON to the response.
func (Serializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := API.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

// Deserialize reads the request body into i.
//
// Any decode failure becomes a 400 carrying the original error as internal
// cause, so the binder never leaks parser messages to clients.
func (Serializer) Deserialize(c echo.Context, i interface{}) error {
	if err := API.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	return nil
}
