package rtid

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/levelkit/pkg/errors"
)

// Scan collects every string in a decoded JSON value that is written in
// the explicit RTID form. Object keys are visited in sorted order so the
// result is deterministic.
func Scan(v any) []string {
	var out []string
	scan(v, &out)
	return out
}

// ScanJSON decodes raw and scans it. Empty input yields no references.
func ScanJSON(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode payload")
	}
	return Scan(v), nil
}

func scan(v any, out *[]string) {
	switch t := v.(type) {
	case string:
		if IsRTID(t) {
			*out = append(*out, t)
		}
	case []any:
		for _, e := range t {
			scan(e, out)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			scan(t[k], out)
		}
	}
}
