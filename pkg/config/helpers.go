package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SetValue sets a configuration value by its YAML key, e.g. "retry_max" or
// "storage_url". The result is not validated; call Validate afterwards.
func (c *Config) SetValue(key, value string) error {
	field, ok := c.field(key)
	if !ok {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	switch {
	case field.Type() == reflect.TypeOf(time.Duration(0)):
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %s", key, value)
		}
		field.SetInt(int64(d))
	case field.Kind() == reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", key, value)
		}
		field.SetInt(int64(n))
	case field.Kind() == reflect.String:
		field.SetString(value)
	default:
		return fmt.Errorf("unsupported configuration key: %s", key)
	}
	return nil
}

// GetValue returns the value of a YAML key as a string.
func (c *Config) GetValue(key string) (string, error) {
	field, ok := c.field(key)
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return formatValue(field), nil
}

// Keys returns every settable key in sorted order.
func (c *Config) Keys() []string {
	keys := make([]string, 0)
	for key := range c.ToMap() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ToMap flattens settings and endpoints into key/value strings.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)
	for _, section := range []reflect.Value{
		reflect.ValueOf(&c.Settings).Elem(),
		reflect.ValueOf(&c.Endpoints).Elem(),
	} {
		sectionType := section.Type()
		for i := 0; i < section.NumField(); i++ {
			key := yamlKey(sectionType.Field(i))
			if key == "" {
				continue
			}
			result[key] = formatValue(section.Field(i))
		}
	}
	return result
}

func (c *Config) field(key string) (reflect.Value, bool) {
	for _, section := range []reflect.Value{
		reflect.ValueOf(&c.Settings).Elem(),
		reflect.ValueOf(&c.Endpoints).Elem(),
	} {
		sectionType := section.Type()
		for i := 0; i < section.NumField(); i++ {
			if yamlKey(sectionType.Field(i)) == key {
				return section.Field(i), true
			}
		}
	}
	return reflect.Value{}, false
}

// yamlKey handles yaml tags with options (e.g., "platform,omitempty").
func yamlKey(field reflect.StructField) string {
	tag := field.Tag.Get("yaml")
	if tag == "" || tag == "-" {
		return ""
	}
	return strings.Split(tag, ",")[0]
}

func formatValue(v reflect.Value) string {
	if v.Type() == reflect.TypeOf(time.Duration(0)) {
		return time.Duration(v.Int()).String()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
