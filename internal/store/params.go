package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// EncodeParams turns a filter into query parameters using its JSON field names.
// Null, empty string and empty list values are left out.
func EncodeParams(filter any) (url.Values, error) {
	raw, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("filter must encode to a JSON object: %w", err)
	}

	params := url.Values{}
	for k, v := range fields {
		switch tv := v.(type) {
		case nil:
		case string:
			if tv != "" {
				params.Set(k, tv)
			}
		case json.Number:
			params.Set(k, tv.String())
		case bool:
			params.Set(k, strconv.FormatBool(tv))
		case []any:
			for _, item := range tv {
				if item != nil && item != "" {
					params.Add(k, fmt.Sprint(item))
				}
			}
		default:
			b, err := json.Marshal(tv)
			if err != nil {
				return nil, fmt.Errorf("encode filter field %s: %w", k, err)
			}
			params.Set(k, string(b))
		}
	}
	return params, nil
}
