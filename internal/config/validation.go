package config

import (
	"fmt"
	"strings"

	"wpm/internal/dependency"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}
	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{Field: field, Value: val, Message: message})
}

// ValidateRequired checks if a required string field is not empty.
func ValidateRequired(field, value, entityType string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Value: value, Message: fmt.Sprintf("is required for %s", entityType)}
	}
	return nil
}

// ValidateOneOf checks if a value is in a list of allowed values.
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{Field: field, Value: value, Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))}
}

// ValidateUnitName validates that a unit name follows proper conventions:
// non-empty, no path separators, no whitespace.
func ValidateUnitName(name string) error {
	if err := ValidateRequired("name", name, "unit"); err != nil {
		return err
	}
	if strings.ContainsAny(name, " \t\r\n/\\") {
		return ValidationError{Field: "name", Value: name, Message: "must not contain whitespace or path separators"}
	}
	return nil
}

// ValidateExecutable checks that an Executable names exactly one source: a
// literal local path or a resource descriptor, never both or neither.
func ValidateExecutable(field string, e Executable) error {
	hasLocal := strings.TrimSpace(e.LocalPath) != ""
	hasResource := e.Resource != nil
	switch {
	case !hasLocal && !hasResource:
		return ValidationError{Field: field, Message: "must set local_path or resource"}
	case hasLocal && hasResource:
		return ValidationError{Field: field, Message: "must not set both local_path and resource"}
	}
	if hasResource {
		r := e.Resource
		if r.Scoop == nil && strings.TrimSpace(r.URL) == "" {
			return ValidationError{Field: field + ".resource", Message: "must set url or scoop"}
		}
		if r.Scoop != nil {
			if r.Scoop.Bucket == "" || r.Scoop.App == "" || r.Scoop.Binary == "" {
				return ValidationError{Field: field + ".resource.scoop", Message: "bucket, app and binary are all required"}
			}
		}
	}
	return nil
}

func validateServiceCommand(field string, c ServiceCommand) error {
	if err := ValidateExecutable(field+".executable", c.Executable); err != nil {
		return err
	}
	if c.RetryLimit < 0 {
		return ValidationError{Field: field + ".retry_limit", Message: "must not be negative"}
	}
	return nil
}

// ValidateUnit validates a single unit's own shape (not its place in the
// dependency graph, which ValidateUnitSet checks across the whole set).
func ValidateUnit(u Unit) error {
	var errs ValidationErrors

	if err := ValidateUnitName(u.Name); err != nil {
		errs.Add("name", err.Error())
	}

	switch u.Service.Kind {
	case KindSimple, KindOneshot, KindForking:
	case "":
		errs.Add("service.kind", "is required")
	default:
		errs.Add("service.kind", fmt.Sprintf("unknown service kind %q", u.Service.Kind))
	}

	if err := ValidateExecutable("service.executable", u.Service.Executable); err != nil {
		errs.Add("service.executable", err.Error())
	}

	for name, ref := range u.Service.Resources {
		if strings.TrimSpace(name) == "" {
			errs.Add("service.resources", "resource key must not be empty")
			continue
		}
		if ref.Scoop == nil && strings.TrimSpace(ref.URL) == "" {
			errs.Add(fmt.Sprintf("service.resources[%s]", name), "must set url or scoop")
		}
	}

	for i, c := range u.Service.ExecStartPre {
		if err := validateServiceCommand(fmt.Sprintf("service.exec_start_pre[%d]", i), c); err != nil {
			errs.Add(fmt.Sprintf("service.exec_start_pre[%d]", i), err.Error())
		}
	}
	for i, c := range u.Service.ExecStartPost {
		if err := validateServiceCommand(fmt.Sprintf("service.exec_start_post[%d]", i), c); err != nil {
			errs.Add(fmt.Sprintf("service.exec_start_post[%d]", i), err.Error())
		}
	}
	for i, c := range u.Service.ExecStop {
		if err := validateServiceCommand(fmt.Sprintf("service.exec_stop[%d]", i), c); err != nil {
			errs.Add(fmt.Sprintf("service.exec_stop[%d]", i), err.Error())
		}
	}
	for i, c := range u.Service.ExecStopPost {
		if err := validateServiceCommand(fmt.Sprintf("service.exec_stop_post[%d]", i), c); err != nil {
			errs.Add(fmt.Sprintf("service.exec_stop_post[%d]", i), err.Error())
		}
	}

	if hc := u.Service.Healthcheck; hc != nil {
		switch hc.Kind {
		case HealthcheckCommand:
			if hc.Command == nil {
				errs.Add("service.healthcheck.command", "is required when kind is command")
			} else if err := validateServiceCommand("service.healthcheck.command", *hc.Command); err != nil {
				errs.Add("service.healthcheck.command", err.Error())
			}
		case HealthcheckProcess:
			// ProcessImage is optional: when unset, the healthcheck verifies
			// the spawned PID itself is still alive instead of scanning for
			// a named image.
		default:
			errs.Add("service.healthcheck.kind", fmt.Sprintf("unknown healthcheck kind %q", hc.Kind))
		}
	}

	switch u.Service.Restart {
	case "", RestartNever, RestartAlways, RestartOnFailure:
	default:
		errs.Add("service.restart", fmt.Sprintf("unknown restart policy %q", u.Service.Restart))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidateUnitSet validates every unit individually, then checks
// cross-cutting properties: unique names, dependencies that resolve to a
// unit in the set, and an acyclic dependency graph.
func ValidateUnitSet(units []Unit) error {
	var errs ValidationErrors

	seen := make(map[string]bool, len(units))
	g := dependency.New()

	for _, u := range units {
		if err := ValidateUnit(u); err != nil {
			errs.Add(u.Name, err.Error())
			continue
		}
		if seen[u.Name] {
			errs.Add("name", fmt.Sprintf("duplicate unit name %q", u.Name))
			continue
		}
		seen[u.Name] = true

		deps := make([]dependency.NodeID, len(u.DependsOn))
		for i, d := range u.DependsOn {
			deps[i] = dependency.NodeID(d)
		}
		g.AddNode(dependency.Node{ID: dependency.NodeID(u.Name), DependsOn: deps})
	}

	if errs.HasErrors() {
		return errs
	}

	if err := g.Validate(); err != nil {
		return err
	}
	return nil
}
