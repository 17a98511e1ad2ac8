package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mlops-grupo21/ratingdash/internal/apperr"
	"github.com/mlops-grupo21/ratingdash/internal/movie"
)

// Action is a dashboard menu entry.
type Action string

const (
	ActionPredict        Action = "predict"
	ActionEdit           Action = "edit"
	ActionTestConnection Action = "test-connection"
	ActionModelInfo      Action = "model-info"
	ActionChangeURL      Action = "change-url"
	ActionClear          Action = "clear"
	ActionQuit           Action = "quit"
)

// MenuEntry pairs an action with its label.
type MenuEntry struct {
	Action Action
	Label  string
}

// Menu is the dashboard menu in display order.
var Menu = []MenuEntry{
	{ActionPredict, "🎯 Predict category"},
	{ActionEdit, "✏️  Edit movie features"},
	{ActionTestConnection, "🔗 Test connection"},
	{ActionModelInfo, "📊 Model info"},
	{ActionChangeURL, "⚙️  Change API URL"},
	{ActionClear, "🧹 Clear result"},
	{ActionQuit, "Quit"},
}

// FeatureFields lists the labelled values of f in form order.
func FeatureFields(f movie.Features) []FieldView {
	out := make([]FieldView, 0, len(movie.Fields))
	for _, spec := range movie.Fields {
		out = append(out, FieldView{Label: spec.Label, Value: f.Value(spec.Key)})
	}
	return out
}

// EditFeatures shows the feature form seeded with current. The returned
// features are valid; current is returned unchanged on error.
func EditFeatures(current movie.Features) (movie.Features, error) {
	values := make(map[movie.Key]*string, len(movie.Fields))
	var fields []huh.Field
	for _, spec := range movie.Fields {
		v := current.Value(spec.Key)
		values[spec.Key] = &v
		fields = append(fields, featureField(spec, current, &v))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Movie features").
				Description("Describe the movie to classify"),
		),
		huh.NewGroup(fields...),
	)
	if err := runForm(form); err != nil {
		return current, err
	}

	next := current
	for _, spec := range movie.Fields {
		if err := next.ParseField(spec.Key, *values[spec.Key]); err != nil {
			return current, err
		}
	}
	return next, nil
}

func featureField(spec movie.FieldSpec, current movie.Features, value *string) huh.Field {
	if !spec.Numeric() {
		return huh.NewSelect[string]().
			Title(spec.Label).
			Description(spec.Help).
			Options(huh.NewOptions(spec.Options...)...).
			Value(value)
	}

	return huh.NewInput().
		Title(spec.Label).
		Description(fmt.Sprintf("%s %s", spec.Help, Dim.Render(spec.Bounds.String()))).
		Value(value).
		Validate(func(s string) error {
			probe := current
			return probe.ParseField(spec.Key, s)
		})
}

// SelectAction shows the dashboard menu.
func SelectAction() (Action, error) {
	var choice string
	opts := make([]huh.Option[string], 0, len(Menu))
	for _, e := range Menu {
		opts = append(opts, huh.NewOption(e.Label, string(e.Action)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What next?").
				Options(opts...).
				Value(&choice),
		),
	)
	if err := runForm(form); err != nil {
		return "", err
	}
	return Action(choice), nil
}

// PromptBaseURL asks for a new service URL. validate rejects unusable input.
func PromptBaseURL(current string, validate func(string) error) (string, error) {
	value := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API URL").
				Description("Base URL of the prediction service").
				Placeholder(current).
				Value(&value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("this field is required")
					}
					if validate != nil {
						return validate(s)
					}
					return nil
				}),
		),
	)
	if err := runForm(form); err != nil {
		return current, err
	}
	return strings.TrimSpace(value), nil
}

func runForm(form *huh.Form) error {
	err := form.Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return apperr.ErrCancelled
	}
	return err
}
