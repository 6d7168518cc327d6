// Package editor turns user-typed forms into validated store inputs and
// keeps the single in-progress edit draft.
package editor

import (
	"strconv"

	"github.com/heartmarshall/chartboard/internal/domain"
	"github.com/heartmarshall/chartboard/internal/service/board"
)

// TopicForm is the raw topic form as typed by the user.
type TopicForm struct {
	Name      string `json:"name"       validate:"required,max=100"`
	ChartType string `json:"chart_type" validate:"required,charttype"`
}

func (f TopicForm) normalized() TopicForm {
	return TopicForm{
		Name:      domain.NormalizeName(f.Name),
		ChartType: string(domain.ParseChartType(f.ChartType)),
	}
}

// Validate reports every invalid field. A blank name counts as missing.
func (f TopicForm) Validate() error {
	return check(f.normalized())
}

// ToCreateInput validates the form and converts it into a store input.
func (f TopicForm) ToCreateInput() (board.CreateTopicInput, error) {
	n := f.normalized()
	if err := check(n); err != nil {
		return board.CreateTopicInput{}, err
	}
	return board.CreateTopicInput{Name: n.Name, ChartType: domain.ChartType(n.ChartType)}, nil
}

// ToUpdateInput validates the form and converts it into a full update of topicID.
func (f TopicForm) ToUpdateInput(topicID int64) (board.UpdateTopicInput, error) {
	in, err := f.ToCreateInput()
	if err != nil {
		return board.UpdateTopicInput{}, err
	}
	return board.UpdateTopicInput{TopicID: topicID, Name: &in.Name, ChartType: &in.ChartType}, nil
}

// TopicFormFrom fills a form with the current values of a topic.
func TopicFormFrom(t domain.Topic) TopicForm {
	return TopicForm{Name: t.Name, ChartType: string(t.ChartType)}
}

// DetailForm is the raw detail form. Value stays text until validated so
// "abc" and "" are reported instead of silently becoming zero.
type DetailForm struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Value string `json:"value" validate:"required,finite"`
	Color string `json:"color" validate:"omitempty,chartcolor"`
}

func (f DetailForm) normalized() DetailForm {
	return DetailForm{
		Name:  domain.NormalizeName(f.Name),
		Value: f.Value,
		Color: f.Color,
	}
}

// Validate reports every invalid field.
func (f DetailForm) Validate() error {
	return check(f.normalized())
}

// Fields validates the form and returns the parsed detail fields.
// An empty color becomes the default detail color.
func (f DetailForm) Fields() (board.DetailFields, error) {
	n := f.normalized()
	if err := check(n); err != nil {
		return board.DetailFields{}, err
	}
	value, err := parseValue(n.Value)
	if err != nil {
		return board.DetailFields{}, domain.NewValidationError("value", "must be a finite number")
	}
	color, err := domain.NormalizeColor(n.Color)
	if err != nil {
		return board.DetailFields{}, domain.NewValidationError("color", "must be a hex color like "+domain.DefaultDetailColor)
	}
	return board.DetailFields{Name: n.Name, Value: value, Color: color}, nil
}

// DetailFormFrom fills a form with the current values of a detail.
func DetailFormFrom(d domain.Detail) DetailForm {
	return DetailForm{
		Name:  d.Name,
		Value: strconv.FormatFloat(d.Value, 'f', -1, 64),
		Color: d.Color,
	}
}
