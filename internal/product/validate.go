package product

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	WarnFixErrors  = "⚠️ Please fix validation errors!"
	WarnFillFields = "⚠️ Fill all fields! If something doesn't apply, write 'None'."
)

// FieldError reports a problem with a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError blocks a submission. Fields is empty when the only problem
// is a missing value.
type ValidationError struct {
	Warning string       `json:"warning"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Warning
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("%s %s", e.Warning, strings.Join(msgs, " "))
}

// cjkNumerals are ideographs that carry a numeric value but sit in the
// letter category.
var cjkNumerals = map[rune]bool{}

func init() {
	for _, r := range "〇零一二三四五六七八九十百千万萬億亿兆壹弌貳贰弍貮參叁弎参肆伍陸陆柒捌玖拾佰仟两兩廿卅卌" {
		cjkNumerals[r] = true
	}
}

// IsNumeric reports whether s is non-empty and made only of numeric runes:
// the Unicode number categories plus the CJK numeral ideographs.
// "12", "½" and "十二" are numeric, "3.5" and " 12" are not.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) && !cjkNumerals[r] {
			return false
		}
	}
	return true
}

// Validate checks the text columns of r. Numeric-only values take precedence
// over empty ones. It returns nil when r may be submitted.
func Validate(r Record) *ValidationError {
	values := r.Categorical()

	var fields []FieldError
	empty := false
	for _, col := range TextColumns {
		v := values[col]
		if IsNumeric(v) {
			fields = append(fields, FieldError{
				Field:   col,
				Message: col + " should not contain numbers.",
			})
		}
		if v == "" {
			empty = true
		}
	}

	switch {
	case len(fields) > 0:
		return &ValidationError{Warning: WarnFixErrors, Fields: fields}
	case empty:
		return &ValidationError{Warning: WarnFillFields}
	}
	return nil
}
