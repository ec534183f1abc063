package tui

import (
	"strings"

	"loanos-client/internal/render"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	Label       string
	Placeholder string
	Value       string
	Password    bool
	// Upper upper-cases the value as it is typed.
	Upper bool
	// Choices turns the field into a selector cycled with the toggle keys.
	Choices []string
}

// form is a column of text inputs with one focused at a time.
type form struct {
	keys   keyMap
	fields []formField
	inputs []textinput.Model
	focus  int
}

func newForm(keys keyMap, fields ...formField) *form {
	f := &form{keys: keys, fields: fields}
	f.inputs = make([]textinput.Model, len(fields))
	for i, fl := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = fl.Placeholder
		in.CharLimit = 120
		if fl.Password {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		in.SetValue(fl.Value)
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) Value(i int) string { return f.inputs[i].Value() }

// Reset restores every field to its initial value and focuses the first.
func (f *form) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue(f.fields[i].Value)
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}

// Update handles focus movement and typing. Submit and cancel keys are the
// caller's.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, f.keys.Next):
			f.move(1)
			return nil
		case key.Matches(km, f.keys.Prev):
			f.move(-1)
			return nil
		}
		if choices := f.fields[f.focus].Choices; len(choices) > 0 {
			if key.Matches(km, f.keys.Toggle) {
				f.cycle(choices, km.String() == "left")
			}
			return nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.fields[f.focus].Upper {
		if v := f.inputs[f.focus].Value(); v != strings.ToUpper(v) {
			f.inputs[f.focus].SetValue(strings.ToUpper(v))
		}
	}
	return cmd
}

func (f *form) move(dir int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) cycle(choices []string, back bool) {
	cur := 0
	for i, c := range choices {
		if c == f.inputs[f.focus].Value() {
			cur = i
		}
	}
	step := 1
	if back {
		step = -1
	}
	f.inputs[f.focus].SetValue(choices[(cur+step+len(choices))%len(choices)])
}

func (f *form) View() string {
	width := 0
	for _, fl := range f.fields {
		width = max(width, len(fl.Label))
	}
	lines := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		prefix := "  "
		if i == f.focus {
			prefix = render.Cursor("> ")
		}
		label := f.fields[i].Label + ":" + strings.Repeat(" ", width-len(f.fields[i].Label)+1)
		value := in.View()
		if len(f.fields[i].Choices) > 0 {
			value = "‹ " + in.Value() + " ›"
		}
		lines[i] = prefix + label + value
	}
	return strings.Join(lines, "\n")
}
