//go:build !integration

package widget

import (
	"testing"

	"skyVoyage/domain"
)

func TestParseDirective_MalformedPayloadsCollapseToNil(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"null", "null"},
		{"whitespace", "   "},
		{"plain ack string", `"No AI widget for this page"`},
		{"string wrapping broken json", `"{\"component_type\":"`},
		{"truncated object", `{"component_type":"popup"`},
		{"array payload", `[1,2,3]`},
		{"number payload", `42`},
		{"missing title", `{"component_type":"popup","body":"b","priority":"high","cta_list":[{"label":"Go","action":"go"}]}`},
		{"missing body", `{"component_type":"popup","title":"t","priority":"high","cta_list":[{"label":"Go","action":"go"}]}`},
		{"missing priority", `{"component_type":"popup","title":"t","body":"b","cta_list":[{"label":"Go","action":"go"}]}`},
		{"empty cta list", `{"component_type":"popup","title":"t","body":"b","priority":"high","cta_list":[]}`},
		{"ctas all malformed", `{"component_type":"popup","title":"t","body":"b","priority":"high","cta_list":[{"label":"","action":""}]}`},
		{"wrong field types", `{"component_type":7,"title":"t","body":"b","priority":"high","cta_list":[{"label":"Go","action":"go"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var raw []byte
			if tc.raw != "" {
				raw = []byte(tc.raw)
			}
			if got := ParseDirective(raw); got != nil {
				t.Errorf("ParseDirective(%q) = %+v, want nil", tc.raw, got)
			}
		})
	}
}

func TestParseDirective_ValidObject(t *testing.T) {
	raw := []byte(`{
		"component_type": "banner",
		"title": "Welcome back",
		"body": "You have an unfinished booking",
		"priority": "high",
		"position": "bottom",
		"icon": "✈️",
		"cta_list": [
			{"label": "Resume", "action": "manage_existing"},
			{"label": "Start over", "action": "continue_search"}
		]
	}`)

	d := ParseDirective(raw)
	if d == nil {
		t.Fatal("ParseDirective returned nil for a valid payload")
	}
	if d.ComponentType != domain.ShapeBanner {
		t.Errorf("ComponentType = %q, want banner", d.ComponentType)
	}
	if d.Position != domain.PositionBottom {
		t.Errorf("Position = %q, want bottom", d.Position)
	}
	if d.Icon != "✈️" {
		t.Errorf("Icon = %q, want supplied icon", d.Icon)
	}
	if len(d.CTAList) != 2 || d.CTAList[0].Action != "manage_existing" {
		t.Errorf("CTAList = %+v, want both entries in order", d.CTAList)
	}
}

func TestParseDirective_JSONEncodedString(t *testing.T) {
	raw := []byte(`"{\"component_type\":\"popup\",\"title\":\"Deal\",\"body\":\"Save now\",\"priority\":\"medium\",\"cta_list\":[{\"label\":\"Show\",\"action\":\"show_cheapest\"}]}"`)

	d := ParseDirective(raw)
	if d == nil {
		t.Fatal("ParseDirective returned nil for a JSON-encoded directive string")
	}
	if d.ComponentType != domain.ShapePopup {
		t.Errorf("ComponentType = %q, want popup", d.ComponentType)
	}
}

func TestParseDirective_OptionalDefaults(t *testing.T) {
	raw := []byte(`{"component_type":"popup","title":"t","body":"b","priority":"low","cta_list":[{"label":"Go","action":"go"}]}`)

	d := ParseDirective(raw)
	if d == nil {
		t.Fatal("ParseDirective returned nil")
	}
	if d.Position != domain.PositionTop {
		t.Errorf("default Position = %q, want top", d.Position)
	}
	if d.Icon != defaultIcon {
		t.Errorf("default Icon = %q, want %q", d.Icon, defaultIcon)
	}
}

func TestParseDirective_DropsMalformedCTAEntries(t *testing.T) {
	raw := []byte(`{"component_type":"popup","title":"t","body":"b","priority":"low",
		"cta_list":[{"label":"","action":"x"},{"label":"Keep","action":"keep"}]}`)

	d := ParseDirective(raw)
	if d == nil {
		t.Fatal("ParseDirective returned nil")
	}
	if len(d.CTAList) != 1 || d.CTAList[0].Action != "keep" {
		t.Errorf("CTAList = %+v, want only the well-formed entry", d.CTAList)
	}
}

func TestParseDirective_UnknownShapeKept(t *testing.T) {
	raw := []byte(`{"component_type":"hologram","title":"t","body":"b","priority":"high","cta_list":[{"label":"Go","action":"go"}]}`)

	d := ParseDirective(raw)
	if d == nil {
		t.Fatal("unknown shapes belong to the renderer fallback, not the parser")
	}
	if d.ComponentType != "hologram" {
		t.Errorf("ComponentType = %q, want preserved", d.ComponentType)
	}
}
