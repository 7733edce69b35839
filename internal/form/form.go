// Package form is the controller behind the ticket form: it resolves which
// extra fields an origin needs, validates a draft, and assembles the final
// record row.
package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/opsdesk/ticketera/internal/catalog"
	"github.com/opsdesk/ticketera/internal/errs"
	"github.com/opsdesk/ticketera/internal/model"
)

// SetOrigin sets the draft's origin. Previously entered extra-field values are
// kept on purpose: switching origin back and forth must not lose input.
func SetOrigin(d *model.Draft, origin model.Origin) {
	d.Origin = origin
}

// SetExtraField records the value of the extra field at index (position in
// the origin's spec list).
func SetExtraField(d *model.Draft, index int, value string) {
	if d.Fields == nil {
		d.Fields = make(map[int]string)
	}
	d.Fields[index] = value
}

func SetReason(d *model.Draft, reason string) {
	d.Reason = reason
}

func SetDetails(d *model.Draft, details string) {
	d.Details = details
}

// Validate runs every required-field check and returns all failures at once,
// in form order: origin, origin-specific fields, reason, details. A nil
// result means the draft is complete.
func Validate(d *model.Draft) errs.ValidationErrors {
	var verrs errs.ValidationErrors
	if d.Origin == "" {
		verrs = append(verrs, errs.ValidationError{Field: "origin", Message: "Falta el Origen."})
	}
	for i, spec := range catalog.ExtraFieldsFor(d.Origin) {
		if !spec.Required {
			continue
		}
		if strings.TrimSpace(d.Fields[i]) == "" {
			verrs = append(verrs, errs.ValidationError{
				Field:   fmt.Sprintf("fields[%d]", i),
				Message: fmt.Sprintf("Falta: %s.", spec.Label),
			})
		}
	}
	if d.Reason == "" {
		verrs = append(verrs, errs.ValidationError{Field: "reason", Message: "Falta el Motivo."})
	} else if d.Origin != "" && !reasonAllowed(d.Origin, d.Reason) {
		verrs = append(verrs, errs.ValidationError{Field: "reason", Message: "Motivo no válido para el origen."})
	}
	if strings.TrimSpace(d.Details) == "" {
		verrs = append(verrs, errs.ValidationError{Field: "details", Message: "Faltan los Detalles."})
	}
	return verrs
}

func reasonAllowed(origin model.Origin, reason string) bool {
	for _, r := range catalog.ReasonsFor(origin) {
		if r == reason {
			return true
		}
	}
	return false
}

// BuildRecord assembles the persisted row from a draft that passed Validate.
// Multi-field origins concatenate their values into a single reference using
// the "Label: value | Label: value" format; single-field origins use the raw
// value.
func BuildRecord(d *model.Draft, operator string, closedAt time.Time) model.Record {
	specs := catalog.ExtraFieldsFor(d.Origin)
	var reference string
	switch len(specs) {
	case 0:
		reference = ""
	case 1:
		reference = d.Fields[0]
	default:
		parts := make([]string, len(specs))
		for i, spec := range specs {
			parts[i] = spec.Label + ": " + d.Fields[i]
		}
		reference = strings.Join(parts, " | ")
	}
	return model.Record{
		Operator:  operator,
		OpenedAt:  d.StartedAt,
		ClosedAt:  closedAt,
		Origin:    string(d.Origin),
		Reference: reference,
		Reason:    d.Reason,
		Details:   d.Details,
	}
}

// Reset returns a fresh draft opened at now. The old draft is discarded
// entirely; there is no partial reset.
func Reset(now time.Time) *model.Draft {
	return model.NewDraft(now)
}
