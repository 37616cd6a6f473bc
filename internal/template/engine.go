package template

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// UnknownResourceKeyError is returned when a string references
// {{ Resources.KEY }} for a KEY the engine's resource map does not contain.
type UnknownResourceKeyError struct {
	Key string
}

func (e *UnknownResourceKeyError) Error() string {
	return fmt.Sprintf("unknown resource key %q", e.Key)
}

var (
	resourcePattern = regexp.MustCompile(`\{\{\s*Resources\.([a-zA-Z0-9_-]+)\s*\}\}`)
	winEnvPattern   = regexp.MustCompile(`%([a-zA-Z_][a-zA-Z0-9_]*)%`)
)

// Engine expands a unit's placeholder syntax. Each unit should get its own
// Engine, built with that unit's own resolved resource paths, so resource
// references never leak across units.
type Engine struct {
	resources map[string]string
	vars      map[string]interface{}
}

// New creates an Engine. resources maps a unit's service.resources keys to
// the local paths the resource store resolved them to; vars is additional
// context exposed to the Sprig-powered template fallback (e.g. "env",
// "unit").
func New(resources map[string]string, vars map[string]interface{}) *Engine {
	return &Engine{resources: resources, vars: vars}
}

// Expand resolves environment references, {{ Resources.KEY }} lookups, and
// finally any remaining Go template syntax, in that order.
func (e *Engine) Expand(s string) (string, error) {
	s = expandEnv(s)

	s, err := e.expandResources(s)
	if err != nil {
		return "", err
	}

	return e.expandGoTemplate(s)
}

// expandEnv handles both $VAR / ${VAR} (POSIX-style, honored for
// cross-platform development and testing) and %VAR% (Windows-style, the
// form unit authors are expected to use in practice).
func expandEnv(s string) string {
	s = winEnvPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := winEnvPattern.FindStringSubmatch(m)[1]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return m
	})
	return os.Expand(s, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return "$" + name
	})
}

func (e *Engine) expandResources(s string) (string, error) {
	var outerErr error
	result := resourcePattern.ReplaceAllStringFunc(s, func(m string) string {
		key := resourcePattern.FindStringSubmatch(m)[1]
		path, ok := e.resources[key]
		if !ok {
			outerErr = &UnknownResourceKeyError{Key: key}
			return m
		}
		return path
	})
	if outerErr != nil {
		return "", outerErr
	}
	return result, nil
}

// expandGoTemplate renders anything still containing "{{" as a full Go
// template with Sprig functions, for expressions more involved than a bare
// substitution (e.g. {{ .env.BUILD_NUMBER | default "0" }}). Strings with no
// remaining template syntax are returned unchanged.
func (e *Engine) expandGoTemplate(s string) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	tmpl, err := template.New("unit").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid template %q: %w", s, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, e.vars); err != nil {
		return "", fmt.Errorf("expanding template %q: %w", s, err)
	}
	return buf.String(), nil
}
