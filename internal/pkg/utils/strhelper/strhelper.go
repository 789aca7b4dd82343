package strhelper

import (
	"strings"

	"github.com/spf13/cast"
)

// ReplacePlaceholders in the "{placeholder}" format by values.
func ReplacePlaceholders(template string, placeholders map[string]interface{}) string {
	for key, value := range placeholders {
		template = strings.ReplaceAll(template, "{"+key+"}", cast.ToString(value))
	}
	return template
}
