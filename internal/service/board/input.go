package board

import (
	"math"
	"unicode/utf8"

	"github.com/heartmarshall/chartboard/internal/domain"
)

const maxNameLength = 100

// CreateTopicInput holds the parameters for creating a topic.
type CreateTopicInput struct {
	Name      string
	ChartType domain.ChartType
}

// Validate checks all fields and collects all errors.
func (i CreateTopicInput) Validate() error {
	var errs []domain.FieldError
	errs = validateName(errs, "name", i.Name)
	errs = validateChartType(errs, i.ChartType)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateTopicInput holds the parameters for updating a topic.
// Nil fields are left unchanged.
type UpdateTopicInput struct {
	TopicID   int64
	Name      *string
	ChartType *domain.ChartType
}

// Validate checks all fields and collects all errors.
func (i UpdateTopicInput) Validate() error {
	var errs []domain.FieldError

	if i.TopicID <= 0 {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	if i.Name == nil && i.ChartType == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		errs = validateName(errs, "name", *i.Name)
	}
	if i.ChartType != nil {
		errs = validateChartType(errs, *i.ChartType)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateTopicInput) params() domain.TopicUpdateParams {
	var p domain.TopicUpdateParams
	if i.Name != nil {
		name := domain.NormalizeName(*i.Name)
		p.Name = &name
	}
	if i.ChartType != nil {
		kind := *i.ChartType
		p.ChartType = &kind
	}
	return p
}

// DeleteTopicInput holds the parameters for deleting a topic.
type DeleteTopicInput struct {
	TopicID int64
}

// Validate checks all fields and collects all errors.
func (i DeleteTopicInput) Validate() error {
	if i.TopicID <= 0 {
		return domain.NewValidationError("topic_id", "required")
	}
	return nil
}

// DetailFields are the user-editable fields of a detail.
type DetailFields struct {
	Name  string
	Value float64
	Color string
}

func (f DetailFields) validate(errs []domain.FieldError) []domain.FieldError {
	errs = validateName(errs, "name", f.Name)
	if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
		errs = append(errs, domain.FieldError{Field: "value", Message: "must be a finite number"})
	}
	if _, err := domain.NormalizeColor(f.Color); err != nil {
		errs = append(errs, domain.FieldError{Field: "color", Message: "must be a hex color like #4a90e2"})
	}
	return errs
}

// params returns the normalized remote parameters. Call after validate.
func (f DetailFields) params() domain.DetailParams {
	color, _ := domain.NormalizeColor(f.Color)
	return domain.DetailParams{
		Name:  domain.NormalizeName(f.Name),
		Value: f.Value,
		Color: color,
	}
}

// AddDetailInput holds the parameters for adding a detail to a topic.
type AddDetailInput struct {
	TopicID int64
	DetailFields
}

// Validate checks all fields and collects all errors.
func (i AddDetailInput) Validate() error {
	var errs []domain.FieldError
	if i.TopicID <= 0 {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	errs = i.DetailFields.validate(errs)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateDetailInput overwrites a detail addressed by id.
type UpdateDetailInput struct {
	TopicID  int64
	DetailID int64
	DetailFields
}

// Validate checks all fields and collects all errors.
func (i UpdateDetailInput) Validate() error {
	var errs []domain.FieldError
	if i.TopicID <= 0 {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	if i.DetailID <= 0 {
		errs = append(errs, domain.FieldError{Field: "detail_id", Message: "required"})
	}
	errs = i.DetailFields.validate(errs)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteDetailInput removes a detail addressed by id.
type DeleteDetailInput struct {
	TopicID  int64
	DetailID int64
}

// Validate checks all fields and collects all errors.
func (i DeleteDetailInput) Validate() error {
	var errs []domain.FieldError
	if i.TopicID <= 0 {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	if i.DetailID <= 0 {
		errs = append(errs, domain.FieldError{Field: "detail_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateDetailAtInput overwrites the detail at a position in its topic.
type UpdateDetailAtInput struct {
	TopicID int64
	Index   int
	DetailFields
}

// DeleteDetailAtInput removes the detail at a position in its topic.
type DeleteDetailAtInput struct {
	TopicID int64
	Index   int
}

func validateName(errs []domain.FieldError, field, raw string) []domain.FieldError {
	name := domain.NormalizeName(raw)
	if name == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return append(errs, domain.FieldError{Field: field, Message: "max 100 characters"})
	}
	return errs
}

func validateChartType(errs []domain.FieldError, kind domain.ChartType) []domain.FieldError {
	if kind == domain.ChartTypeUnset {
		return append(errs, domain.FieldError{Field: "chart_type", Message: "required"})
	}
	if !kind.IsValid() {
		return append(errs, domain.FieldError{Field: "chart_type", Message: "must be one of pie, bar, line"})
	}
	return errs
}
