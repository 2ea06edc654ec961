// Package validation implements the per-route field rule chains applied to
// raw JSON request bodies.
package validation

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Issue describes a field that failed a rule.
type Issue struct {
	Type     string      `json:"type"`
	Value    interface{} `json:"value,omitempty"`
	Msg      string      `json:"msg"`
	Path     string      `json:"path"`
	Location string      `json:"location"`
}

// Rule inspects a raw body and returns an issue when the check fails.
type Rule func(body map[string]interface{}) *Issue

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("positive", isPositive); err != nil {
		panic(err)
	}
}

func isPositive(fl validator.FieldLevel) bool {
	f, err := strconv.ParseFloat(fl.Field().String(), 64)
	return err == nil && !math.IsNaN(f) && f > 0
}

// Field builds a rule that runs the validator tag against the string form of
// body[path] and reports msg when it fails.
func Field(path, tag, msg string) Rule {
	return func(body map[string]interface{}) *Issue {
		value, present := body[path]
		if err := validate.Var(String(value), tag); err == nil {
			return nil
		}
		issue := &Issue{Type: "field", Msg: msg, Path: path, Location: "body"}
		if present {
			issue.Value = value
		}
		return issue
	}
}

// Run evaluates every rule in order and collects the issues. All rules run
// even after a failure.
func Run(body map[string]interface{}, rules []Rule) []Issue {
	issues := make([]Issue, 0)
	for _, rule := range rules {
		if issue := rule(body); issue != nil {
			issues = append(issues, *issue)
		}
	}
	return issues
}

// String returns the form a raw JSON value is checked in: "" for missing or
// null, shortest decimal for numbers, "true"/"false" for booleans.
func String(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Float converts a value that passed the price rules.
func Float(value interface{}) float64 {
	f, _ := strconv.ParseFloat(String(value), 64)
	return f
}

// Bool converts a value that passed the availability rule.
func Bool(value interface{}) bool {
	s := String(value)
	return s == "true" || s == "1"
}
