package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolists/internal/ui"
	"github.com/idilsaglam/todolists/internal/validate"
)

// field is a text input that re-validates on every change.
type field struct {
	label    string
	icon     string
	input    textinput.Model
	validate validate.Validator
	result   validate.Result
}

func newField(label, icon, placeholder string, v validate.Validator) field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.Width = 32
	ti.Cursor.SetMode(cursor.CursorStatic)
	return field{label: label, icon: icon, input: ti, validate: v}
}

func newPasswordField(label, icon, placeholder string, v validate.Validator) field {
	f := newField(label, icon, placeholder, v)
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func (f *field) focus() { f.input.Focus() }
func (f *field) blur()  { f.input.Blur() }

func (f field) value() string { return f.input.Value() }

func (f field) check() validate.Field {
	return validate.Field{Value: f.input.Value(), Result: f.result}
}

func (f *field) reset() {
	f.input.SetValue("")
	f.result = validate.Result{}
}

func (f field) update(msg tea.Msg) (field, tea.Cmd) {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if v := f.input.Value(); v != before && f.validate != nil {
		f.result = f.validate(v)
	}
	return f, cmd
}

func (f field) view() string {
	return ui.Field(f.label, f.icon, f.input.View(), f.result, f.input.Focused())
}
