package param

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

// Binding bind request parameters into v. Query parameters are decoded
// for every method; a json body overrides them when present.
func Binding(r *http.Request, v interface{}) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	if err := decoder.Decode(v, r.Form); err != nil {
		return err
	}

	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if typ := r.Header.Get("Content-Type"); !strings.HasPrefix(typ, "application/json") {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}
