package gui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type FieldKind int

const (
	FieldFloat FieldKind = iota
	FieldInt
	FieldBool
	FieldText
	FieldColor
	FieldChoice
)

// Field is one bound property of a form. Reads and writes go straight to the
// bound object.
type Field struct {
	Name     string
	Kind     FieldKind
	Min, Max float32
	Choices  []string

	get func() any
	set func(any)
}

func (f *Field) Value() any { return f.get() }

// FieldChange is the payload of a form "change" event.
type FieldChange struct {
	Name  string
	Value any
}

// Form edits a set of bound fields. Vector fields are expanded to one float
// field per component, named "<name>.x", "<name>.y" and "<name>.z".
type Form struct {
	element
	Title  string
	fields []*Field
	index  map[string]*Field

	editing string
}

func NewForm(id, title string) *Form {
	return &Form{element: newElement(id), Title: title, index: make(map[string]*Field)}
}

func (f *Form) add(field *Field) *Form {
	if _, exists := f.index[field.Name]; exists {
		panic(fmt.Sprintf("gui: form %s has two fields named %q", f.id, field.Name))
	}
	f.fields = append(f.fields, field)
	f.index[field.Name] = field
	return f
}

func (f *Form) AddFloat(name string, ptr *float32, min, max float32) *Form {
	return f.AddFloatFunc(name, min, max, func() float32 { return *ptr }, func(v float32) { *ptr = v })
}

func (f *Form) AddFloatFunc(name string, min, max float32, get func() float32, set func(float32)) *Form {
	return f.add(&Field{
		Name: name, Kind: FieldFloat, Min: min, Max: max,
		get: func() any { return get() },
		set: func(v any) { set(v.(float32)) },
	})
}

func (f *Form) AddInt(name string, ptr *int, min, max int) *Form {
	return f.add(&Field{
		Name: name, Kind: FieldInt, Min: float32(min), Max: float32(max),
		get: func() any { return *ptr },
		set: func(v any) { *ptr = v.(int) },
	})
}

func (f *Form) AddBool(name string, ptr *bool) *Form {
	return f.AddBoolFunc(name, func() bool { return *ptr }, func(v bool) { *ptr = v })
}

func (f *Form) AddBoolFunc(name string, get func() bool, set func(bool)) *Form {
	return f.add(&Field{
		Name: name, Kind: FieldBool,
		get: func() any { return get() },
		set: func(v any) { set(v.(bool)) },
	})
}

func (f *Form) AddText(name string, ptr *string) *Form {
	return f.AddTextFunc(name, func() string { return *ptr }, func(v string) { *ptr = v })
}

func (f *Form) AddTextFunc(name string, get func() string, set func(string)) *Form {
	return f.add(&Field{
		Name: name, Kind: FieldText,
		get: func() any { return get() },
		set: func(v any) { set(v.(string)) },
	})
}

func (f *Form) AddColor(name string, ptr *rl.Color) *Form {
	return f.add(&Field{
		Name: name, Kind: FieldColor,
		get: func() any { return *ptr },
		set: func(v any) { *ptr = v.(rl.Color) },
	})
}

func (f *Form) AddVector3(name string, ptr *rl.Vector3, min, max float32) *Form {
	f.AddFloat(name+".x", &ptr.X, min, max)
	f.AddFloat(name+".y", &ptr.Y, min, max)
	return f.AddFloat(name+".z", &ptr.Z, min, max)
}

func (f *Form) AddChoice(name string, choices []string, get func() string, set func(string)) *Form {
	return f.add(&Field{
		Name: name, Kind: FieldChoice, Choices: choices,
		get: func() any { return get() },
		set: func(v any) { set(v.(string)) },
	})
}

func (f *Form) Fields() []string {
	out := make([]string, 0, len(f.fields))
	for _, field := range f.fields {
		out = append(out, field.Name)
	}
	return out
}

func (f *Form) Field(name string) *Field { return f.index[name] }

func (f *Form) Value(name string) (any, bool) {
	field, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return field.get(), true
}

// SetValue writes v through the field binding and fires "change", exactly
// as if the user had edited the field.
func (f *Form) SetValue(name string, v any) error {
	field, ok := f.index[name]
	if !ok {
		return fmt.Errorf("form %s: %q: %w", f.id, name, ErrUnknownField)
	}
	converted, err := convert(field, v)
	if err != nil {
		return fmt.Errorf("form %s: %q: %w", f.id, name, err)
	}
	field.set(converted)
	f.emit(EventChange, FieldChange{Name: name, Value: converted})
	return nil
}

// BeginEdit reports whether a change to name starts a new edit. Changes to
// the same field are one edit until EndEdit, which Draw calls once the mouse
// button is up.
func (f *Form) BeginEdit(name string) bool {
	if f.editing == name {
		return false
	}
	f.editing = name
	return true
}

func (f *Form) EndEdit() { f.editing = "" }

func convert(field *Field, v any) (any, error) {
	switch field.Kind {
	case FieldFloat:
		switch n := v.(type) {
		case float32:
			return n, nil
		case float64:
			return float32(n), nil
		case int:
			return float32(n), nil
		}
	case FieldInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case float32:
			return int(n), nil
		case float64:
			return int(n), nil
		}
	case FieldBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case FieldText:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case FieldColor:
		if c, ok := v.(rl.Color); ok {
			return c, nil
		}
	case FieldChoice:
		if s, ok := v.(string); ok {
			for _, c := range field.Choices {
				if c == s {
					return s, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("%T: %w", v, ErrFieldType)
}

// Draw lays the fields out one per row: sliders for numbers, check boxes for
// booleans, a cycling button for choices.
func (f *Form) Draw(bounds rl.Rectangle) {
	const rowH = 24
	x := int32(bounds.X) + 12
	y := bounds.Y + 6
	drawText(editorFontBold, f.Title, x, int32(y), 16, ColorTextSecondary)
	y += rowH

	labelW := bounds.Width * 0.4
	for _, field := range f.fields {
		if y+rowH > bounds.Y+bounds.Height {
			break
		}
		drawText(editorFont, field.Name, x, int32(y)+4, 14, ColorTextMuted)
		r := rl.Rectangle{X: bounds.X + labelW, Y: y, Width: bounds.Width - labelW - 12, Height: rowH - 4}

		switch field.Kind {
		case FieldFloat:
			cur := field.get().(float32)
			if v := gui.Slider(r, "", fmt.Sprintf("%.2f", cur), cur, field.Min, field.Max); v != cur {
				_ = f.SetValue(field.Name, v)
			}
		case FieldInt:
			cur := field.get().(int)
			v := gui.Slider(r, "", fmt.Sprintf("%d", cur), float32(cur), field.Min, field.Max)
			if int(v) != cur {
				_ = f.SetValue(field.Name, int(v))
			}
		case FieldBool:
			cur := field.get().(bool)
			box := rl.Rectangle{X: r.X, Y: r.Y + 2, Width: 16, Height: 16}
			if v := gui.CheckBox(box, "", cur); v != cur {
				_ = f.SetValue(field.Name, v)
			}
		case FieldText:
			gui.Label(r, field.get().(string))
		case FieldColor:
			c := field.get().(rl.Color)
			rl.DrawRectangleRec(r, c)
			rl.DrawRectangleLinesEx(r, 1, ColorBorder)
		case FieldChoice:
			cur := field.get().(string)
			if gui.Button(r, cur) && len(field.Choices) > 0 {
				_ = f.SetValue(field.Name, nextChoice(field.Choices, cur))
			}
		}
		y += rowH
	}
	if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		f.EndEdit()
	}
}

func nextChoice(choices []string, cur string) string {
	for i, c := range choices {
		if c == cur {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}
