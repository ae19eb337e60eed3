package widget

import (
	"bytes"
	"encoding/json"

	"skyVoyage/domain"
	"skyVoyage/pkg/logger"
)

const defaultIcon = "🤖"

// ParseDirective normalizes a raw decision-service payload into a directive.
// The payload may be a JSON object, a JSON string wrapping an object, a
// plain acknowledgement string, or nothing at all; every failure path
// collapses to nil. This function never returns an error and never panics;
// the booking flow must stay usable no matter what the decision service
// sends back.
func ParseDirective(raw []byte) *domain.WidgetDirective {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	// A string payload is either a JSON-encoded directive or a plain
	// acknowledgement; the latter simply means no widget for this page.
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			logger.Debug("widget payload is not valid JSON", "error", err)
			return nil
		}
		return parseObject([]byte(inner))
	}

	return parseObject(raw)
}

func parseObject(raw []byte) *domain.WidgetDirective {
	var d domain.WidgetDirective
	if err := json.Unmarshal(raw, &d); err != nil {
		logger.Debug("no widget directive in payload", "error", err)
		return nil
	}

	if !validDirective(&d) {
		logger.Debug("widget directive failed structural validation")
		return nil
	}

	applyDefaults(&d)

	return &d
}

// validDirective checks the required fields: shape, title, body, at least
// one well-formed call to action, and a priority. Shape values outside the
// known set are kept; the renderer owns the fallback for those.
func validDirective(d *domain.WidgetDirective) bool {
	if d.ComponentType == "" || d.Title == "" || d.Body == "" || d.Priority == "" {
		return false
	}

	ctas := make([]domain.WidgetCTA, 0, len(d.CTAList))
	for _, cta := range d.CTAList {
		if cta.Label == "" || cta.Action == "" {
			continue
		}
		ctas = append(ctas, cta)
	}
	if len(ctas) == 0 {
		return false
	}
	d.CTAList = ctas

	return true
}

func applyDefaults(d *domain.WidgetDirective) {
	if d.Position == "" {
		d.Position = domain.PositionTop
	}
	if d.Icon == "" {
		d.Icon = defaultIcon
	}
}
