package model

import "strings"

// EnumValue is one member of a fixed enumeration: the stored code, the human
// label shown in the UI, and the color used by the map/chart renderers.
type EnumValue struct {
	Code  string
	Label string
	Color string
}

// Enum is a bidirectional code<->label lookup table, built once at init.
// Parse accepts either form case-insensitively and returns the code, or ""
// (unset) when the value matches nothing.
type Enum struct {
	Values []EnumValue
	byKey  map[string]string
}

func newEnum(values []EnumValue) Enum {
	byKey := make(map[string]string, len(values)*2)
	for _, v := range values {
		byKey[strings.ToLower(v.Code)] = v.Code
		byKey[strings.ToLower(v.Label)] = v.Code
	}
	return Enum{Values: values, byKey: byKey}
}

func (e Enum) Parse(s string) string {
	return e.byKey[strings.ToLower(strings.TrimSpace(s))]
}

func (e Enum) Valid(code string) bool {
	for _, v := range e.Values {
		if v.Code == code {
			return true
		}
	}
	return false
}

func (e Enum) Label(code string) string {
	for _, v := range e.Values {
		if v.Code == code {
			return v.Label
		}
	}
	return code
}

func (e Enum) Color(code string) string {
	for _, v := range e.Values {
		if v.Code == code {
			return v.Color
		}
	}
	return ""
}

// Codes returns the codes in declared order. Chart slices and map rows follow
// this order.
func (e Enum) Codes() []string {
	out := make([]string, len(e.Values))
	for i, v := range e.Values {
		out[i] = v.Code
	}
	return out
}

// Interactions is the social-interaction axis of the design map, top row first.
var Interactions = newEnum([]EnumValue{
	{Code: "community", Label: "Community (Student - Community)", Color: "#9ca3af"},
	{Code: "class", Label: "Class (Teacher - Student)", Color: "#cfe8fb"},
	{Code: "group", Label: "Group (Student - Student)", Color: "#ffe39a"},
	{Code: "individual", Label: "Individual (Student - Content)", Color: "#bfbfbf"},
})

// Strategies are the active-learning processes. Colors match the activity box
// fill and the legend.
var Strategies = newEnum([]EnumValue{
	{Code: "activate", Label: "Activate Learning", Color: "#6aced8"},
	{Code: "promote", Label: "Promote thinking and discussion", Color: "#cc6bff"},
	{Code: "facilitate", Label: "Facilitate Demonstration of Learning", Color: "#ffc000"},
	{Code: "monitor", Label: "Monitor and Provide Feedback", Color: "#f6bbbf"},
})

var KeyApplications = newEnum([]EnumValue{
	{Code: "support-assessment", Label: "Support Assessment for Learning", Color: "#7dd3fc"},
	{Code: "foster-conceptual", Label: "Foster Conceptual Change", Color: "#a78bfa"},
	{Code: "provide-differentiation", Label: "Provide Differentiation", Color: "#34d399"},
	{Code: "facilitate-learning-together", Label: "Facilitate Learning Together", Color: "#fbbf24"},
	{Code: "develop-metacognition", Label: "Develop Metacognition", Color: "#fb7185"},
	{Code: "enable-personalisation", Label: "Enable Personalisation", Color: "#38bdf8"},
	{Code: "embed-scaffolding", Label: "Embed Scaffolding", Color: "#f472b6"},
	{Code: "increase-motivation", Label: "Increase Motivation", Color: "#f97316"},
})

var TechIntegrations = newEnum([]EnumValue{
	{Code: "optional", Label: "Optional"},
	{Code: "replacement", Label: "Replacement"},
	{Code: "amplification", Label: "Amplification"},
	{Code: "transformation", Label: "Transformation"},
})

const TechIntegrationDefault = "optional"
