package validator

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/invctl/schema"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Type     string `json:"type"`
	Column   string `json:"column,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

// ValidateColumns checks a column set before it is saved.
func ValidateColumns(columns schema.ColumnSet) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}

	validateNames(columns, result)
	validateSingleSelection(columns, result)
	validateRoles(columns, result)

	result.Info = append(result.Info, ValidationError{
		Type:     "column_count",
		Message:  fmt.Sprintf("%d columns, %d visible", len(columns), len(columns.Visible())),
		Severity: "info",
	})

	result.Valid = len(result.Errors) == 0
	return result
}

func validateNames(columns schema.ColumnSet, result *ValidationResult) {
	seen := map[string]bool{}
	for _, col := range columns {
		name := strings.TrimSpace(col.Name)
		if name == "" {
			result.Errors = append(result.Errors, ValidationError{
				Type:     "column_name",
				Message:  "Column name cannot be empty",
				Severity: "error",
			})
			continue
		}
		if seen[name] {
			result.Errors = append(result.Errors, ValidationError{
				Type:     "duplicate_column",
				Column:   name,
				Message:  fmt.Sprintf("Column '%s' is defined more than once", name),
				Severity: "error",
			})
		}
		seen[name] = true

		if schema.IsBookkeeping(name) {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "bookkeeping_column",
				Column:   name,
				Message:  fmt.Sprintf("Column '%s' is managed by the server and will not be editable", name),
				Severity: "warning",
			})
		}
	}
}

func validateSingleSelection(columns schema.ColumnSet, result *ValidationResult) {
	for _, a := range schema.Attributes {
		if !schema.IsSingleSelection(a) {
			continue
		}
		if holders := columns.Holders(a); len(holders) > 1 {
			result.Errors = append(result.Errors, ValidationError{
				Type:     "single_selection",
				Column:   strings.Join(holders, ","),
				Message:  fmt.Sprintf("Attribute '%s' may only be set on one column, found %d", a, len(holders)),
				Severity: "error",
			})
		}
	}
}

func validateRoles(columns schema.ColumnSet, result *ValidationResult) {
	if _, ok := columns.Holder(schema.Primary); !ok {
		result.Warnings = append(result.Warnings, ValidationError{
			Type:     "no_primary",
			Message:  "No column is tagged primary; records are keyed by 'id' and inventorying is disabled",
			Severity: "warning",
		})
	}
	if _, ok := columns.Holder(schema.Quantity); !ok {
		result.Warnings = append(result.Warnings, ValidationError{
			Type:     "no_quantity",
			Message:  "No column is tagged quantity; inventorying is disabled",
			Severity: "warning",
		})
	}
	if len(columns.SearchColumns()) == 0 {
		result.Warnings = append(result.Warnings, ValidationError{
			Type:     "no_search",
			Message:  "No column is tagged search; searches are sent with an empty column list",
			Severity: "warning",
		})
	}
	for _, col := range columns {
		if col.Has(schema.Primary) && col.Has(schema.Readonly) {
			result.Info = append(result.Info, ValidationError{
				Type:     "readonly_primary",
				Column:   col.Name,
				Message:  fmt.Sprintf("Primary column '%s' is readonly", col.Name),
				Severity: "info",
			})
		}
	}
}
