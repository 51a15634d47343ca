package config

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔢 MaxVersions is the retention count. Zero means unlimited. Decoding never
// fails on a bad value: negative, non-numeric and null all become zero.
type MaxVersions int

// NewMaxVersions clamps n the same way decoding does.
func NewMaxVersions(n int) MaxVersions {
	return clampMaxVersions(float64(n))
}

// Int returns the count as a plain int.
func (m MaxVersions) Int() int {
	return int(m)
}

func (m *MaxVersions) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Errorf("parsing max_versions: %w", err)
	}
	*m = maxVersionsFrom(raw)
	return nil
}

func (m *MaxVersions) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return errors.Errorf("parsing max_versions: %w", err)
	}
	*m = maxVersionsFrom(raw)
	return nil
}

func maxVersionsFrom(raw any) MaxVersions {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	return clampMaxVersions(f)
}

func clampMaxVersions(f float64) MaxVersions {
	if math.IsNaN(f) || f < 1 {
		return 0
	}
	if f > math.MaxInt32 {
		return MaxVersions(math.MaxInt32)
	}
	return MaxVersions(int(f))
}
