package model

import "time"

// TimeLayout is the timestamp format used in every persisted row.
const TimeLayout = "2006-01-02 15:04:05"

// Origin is the channel an incident was reported through. The set is closed:
// the catalog package enumerates every valid value together with its
// extra-field specs and reason list.
type Origin string

const (
	OriginCorreo        Origin = "Correo"
	OriginOperaX        Origin = "OperaX"
	OriginWhatsApp      Origin = "WhatsApp"
	OriginLlamada       Origin = "Llamada"
	OriginConsulta      Origin = "Consulta interna"
	OriginTroubleticket Origin = "Troubleticket"
	OriginGestel        Origin = "Gestel"
)

// FieldSpec describes one origin-specific reference input.
type FieldSpec struct {
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Required    bool   `json:"required"`
}

// Record is a finalized ticket row. Immutable once appended; there is no
// update or delete path.
type Record struct {
	Operator  string    `json:"operator"`
	OpenedAt  time.Time `json:"opened_at"`
	ClosedAt  time.Time `json:"closed_at"`
	Origin    string    `json:"origin"`
	Reference string    `json:"reference"`
	Reason    string    `json:"reason"`
	Details   string    `json:"details"`
}

// Draft is the in-progress, unsaved form state for one session. Fields maps
// the extra-field index (position in the origin's spec list) to the entered
// value. Entered values survive an origin switch; see the form package.
type Draft struct {
	Origin    Origin         `json:"origin,omitempty"`
	Fields    map[int]string `json:"fields"`
	Reason    string         `json:"reason,omitempty"`
	Details   string         `json:"details,omitempty"`
	StartedAt time.Time      `json:"started_at"`
}

// NewDraft returns an empty draft opened at the given time.
func NewDraft(startedAt time.Time) *Draft {
	return &Draft{
		Fields:    make(map[int]string),
		StartedAt: startedAt,
	}
}
