// Package timex provides a time.Duration wrapper that can be decoded from
// config files either as a string like "5m" or as integer nanoseconds.
package timex

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type Duration struct {
	time.Duration
}

func parse(v any) (time.Duration, error) {
	switch value := v.(type) {
	case float64:
		return time.Duration(value), nil
	case int:
		return time.Duration(value), nil
	case string:
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", value, err)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("invalid duration type %T", v)
	}
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := parse(v)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	parsed, err := parse(v)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
