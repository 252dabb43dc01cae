package models

import (
	"fmt"
	"strings"
)

// MissingFields reports which required keys are absent from payload or hold a
// value whose string form is empty after trimming whitespace. The result
// preserves the order of required, which callers echo back verbatim.
func MissingFields(payload map[string]interface{}, required []string) []string {
	var missing []string
	for _, name := range required {
		v, ok := payload[name]
		if !ok || v == nil {
			missing = append(missing, name)
			continue
		}
		if strings.TrimSpace(fmt.Sprintf("%v", v)) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
