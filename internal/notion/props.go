package notion

import (
	"strconv"
	"strings"
)

// Property is a typed page property value. Only the member matching Type is
// populated; the rest stay zero.
type Property struct {
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
}

// RichText is one fragment of a text property.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is one value of a select or multi-select property.
type SelectOption struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// PropType returns the declared type of a named property, or "" when the
// page has no such property.
func PropType(props map[string]Property, name string) string {
	p, ok := props[name]
	if !ok {
		return ""
	}
	return p.Type
}

// TitleProp finds the property whose declared type is "title". Every
// database has exactly one; its name is whatever the user called it.
func TitleProp(props map[string]Property) string {
	for name, p := range props {
		if p.Type == "title" {
			return name
		}
	}
	return ""
}

// PlainTitle concatenates the title property's fragments.
func PlainTitle(props map[string]Property) string {
	for _, p := range props {
		if p.Type != "title" {
			continue
		}
		var sb strings.Builder
		for _, t := range p.Title {
			sb.WriteString(t.PlainText)
		}
		return strings.TrimSpace(sb.String())
	}
	return ""
}

// PlainText concatenates a rich_text property's fragments.
func PlainText(props map[string]Property, name string) string {
	p, ok := props[name]
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, t := range p.RichText {
		sb.WriteString(t.PlainText)
	}
	return strings.TrimSpace(sb.String())
}

// URLValue returns the value of a url property, or "".
func URLValue(props map[string]Property, name string) string {
	p, ok := props[name]
	if !ok || p.Type != "url" || p.URL == nil {
		return ""
	}
	return *p.URL
}

// NumberValue returns a number property's value, or 0.
func NumberValue(props map[string]Property, name string) int {
	p, ok := props[name]
	if !ok || p.Type != "number" || p.Number == nil {
		return 0
	}
	return int(*p.Number)
}

// SelectValue returns the chosen option of a select property, or "". For a
// multi-select it joins the chosen options with ", ".
func SelectValue(props map[string]Property, name string) string {
	p, ok := props[name]
	if !ok {
		return ""
	}
	switch p.Type {
	case "select":
		if p.Select != nil {
			return p.Select.Name
		}
	case "multi_select":
		names := make([]string, 0, len(p.MultiSelect))
		for _, o := range p.MultiSelect {
			names = append(names, o.Name)
		}
		return strings.Join(names, ", ")
	}
	return ""
}

// CheckboxValue returns a checkbox property's value, or false.
func CheckboxValue(props map[string]Property, name string) bool {
	p, ok := props[name]
	if !ok || p.Type != "checkbox" || p.Checkbox == nil {
		return false
	}
	return *p.Checkbox
}

// BuildValue shapes v for a property patch according to the destination's
// declared type. It returns nil when the type is unrecognized or the value
// cannot be coerced, and the caller skips that one field.
func BuildValue(ptype string, v any) map[string]any {
	if v == nil {
		return nil
	}
	switch ptype {
	case "title":
		return map[string]any{
			"title": []map[string]any{textContent(toString(v))},
		}
	case "rich_text":
		return map[string]any{
			"rich_text": []map[string]any{textContent(toString(v))},
		}
	case "url":
		return map[string]any{"url": toString(v)}
	case "number":
		n, ok := toInt(v)
		if !ok {
			return nil
		}
		return map[string]any{"number": n}
	case "select":
		return map[string]any{
			"select": map[string]any{"name": toString(v)},
		}
	case "multi_select":
		var items []map[string]any
		for _, s := range strings.Split(toString(v), ",") {
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, map[string]any{"name": s})
			}
		}
		return map[string]any{"multi_select": items}
	case "checkbox":
		b, ok := v.(bool)
		if !ok {
			return nil
		}
		return map[string]any{"checkbox": b}
	}
	return nil
}

func textContent(s string) map[string]any {
	return map[string]any{"text": map[string]any{"content": s}}
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
