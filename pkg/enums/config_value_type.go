package enums

import "fmt"

// ConfigValueType declares how a system_config row's raw value is decoded.
type ConfigValueType string

const (
	ConfigValueTypeString  ConfigValueType = "string"
	ConfigValueTypeNumber  ConfigValueType = "number"
	ConfigValueTypeBoolean ConfigValueType = "boolean"
)

var validConfigValueTypes = []ConfigValueType{
	ConfigValueTypeString,
	ConfigValueTypeNumber,
	ConfigValueTypeBoolean,
}

// String implements fmt.Stringer.
func (t ConfigValueType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ConfigValueType.
func (t ConfigValueType) IsValid() bool {
	for _, candidate := range validConfigValueTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseConfigValueType converts raw input into a ConfigValueType.
func ParseConfigValueType(value string) (ConfigValueType, error) {
	for _, candidate := range validConfigValueTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid config value type %q", value)
}
