package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Arg is an action argument. It may be written as a scalar or as a list.
type Arg []string

// UnmarshalYAML accepts both "arg: 0.05" and "arg: [st, -e, htop]".
func (a *Arg) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*a = Arg{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*a = list
		return nil
	}
	return fmt.Errorf("line %d: arg must be a scalar or a list", value.Line)
}

// MarshalYAML writes single values back as scalars.
func (a Arg) MarshalYAML() (interface{}, error) {
	if len(a) == 1 {
		return a[0], nil
	}
	return []string(a), nil
}

func (a Arg) String() string {
	return strings.Join(a, " ")
}

// Int returns the first value as an integer, or def if there is none.
func (a Arg) Int(def int) (int, error) {
	if len(a) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(a[0], "+"))
	if err != nil {
		return 0, fmt.Errorf("arg %q: %w", a[0], err)
	}
	return n, nil
}

// Float returns the first value as a float, or def if there is none.
func (a Arg) Float(def float64) (float64, error) {
	if len(a) == 0 {
		return def, nil
	}
	f, err := strconv.ParseFloat(a[0], 64)
	if err != nil {
		return 0, fmt.Errorf("arg %q: %w", a[0], err)
	}
	return f, nil
}

// XSetting is one XSETTINGS entry. Value is an int or a string.
type XSetting struct {
	Name  string
	Value interface{}
}

func (x *XSetting) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name  string    `yaml:"name"`
		Value yaml.Node `yaml:"value"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	x.Name = raw.Name
	switch raw.Value.Tag {
	case "!!int":
		var n int
		if err := raw.Value.Decode(&n); err != nil {
			return err
		}
		x.Value = n
	case "!!str":
		x.Value = raw.Value.Value
	default:
		return fmt.Errorf("line %d: xsetting %q must be an int or a string", raw.Value.Line, raw.Name)
	}
	return nil
}

func (x XSetting) MarshalYAML() (interface{}, error) {
	return struct {
		Name  string      `yaml:"name"`
		Value interface{} `yaml:"value"`
	}{x.Name, x.Value}, nil
}
