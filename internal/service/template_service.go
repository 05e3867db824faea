// internal/service/template_service.go
package service

import (
	"strings"
)

func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

// ResolveMarkers fills the double-brace markers the scheduler leaves in
// stored messages. Empty values render as <unknown> rather than vanishing.
func ResolveMarkers(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		if v == "" {
			v = "<unknown>"
		}
		result = strings.ReplaceAll(result, "{{"+k+"}}", v)
	}
	return result
}
