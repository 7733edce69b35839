// Package catalog holds the static origin catalog: for every incident origin,
// the ordered extra-field specs and the origin-scoped reason list. Loaded once,
// never mutated.
package catalog

import "github.com/opsdesk/ticketera/internal/model"

type entry struct {
	fields  []model.FieldSpec
	reasons []string
}

// Resolution reasons shared by every origin.
var commonReasons = []string{
	"Validado",
	"Cliente Ok no requiere visita",
	"Enviado a Territorio",
	"Atendido por Territorio",
	"Averia Pendiente",
	"Avería Liquidada",
}

var origins = []model.Origin{
	model.OriginCorreo,
	model.OriginOperaX,
	model.OriginWhatsApp,
	model.OriginLlamada,
	model.OriginConsulta,
	model.OriginTroubleticket,
	model.OriginGestel,
}

var entries = map[model.Origin]entry{
	model.OriginCorreo: {
		fields: []model.FieldSpec{
			{Label: "Asunto", Placeholder: "Copie el asunto exacto", Required: true},
			{Label: "Remitente", Placeholder: "correo@dominio.com", Required: true},
		},
		reasons: append([]string{
			"Escalamiento por correo",
			"Escalamiento TDP",
			"Consulta Reclamo",
			"Alerta de masiva",
			"Comercial pendiente",
		}, commonReasons...),
	},
	model.OriginOperaX: {
		reasons: append([]string{
			"Validación de Parametros",
			"Configuración de HGU",
			"Configuración de Deco",
			"Cambio de Facilidades",
			"CLIENTE CMS",
		}, commonReasons...),
	},
	model.OriginWhatsApp: {
		fields: []model.FieldSpec{
			{Label: "Número", Placeholder: "51999...", Required: true},
		},
		reasons: append([]string{
			"Pendiente de llamar/ubicar al cliente",
			"No contesta",
			"No se ubica para validar",
			"Cliente no desea atención",
		}, commonReasons...),
	},
	model.OriginLlamada: {
		reasons: append([]string{
			"Pendiente de llamar/ubicar al cliente",
			"No contesta",
			"No se ubica para validar",
			"Cliente en suspención",
			"Cliente en baja",
			"Se Deriva a Comercial",
			"Problemas Comerciales",
		}, commonReasons...),
	},
	model.OriginConsulta: {
		fields: []model.FieldSpec{
			{Label: "Solicitante", Placeholder: "Nombre del área/persona", Required: true},
		},
		reasons: append([]string{
			"Consulta Reclamo",
			"Se Deriva a Comercial",
			"Comercial pendiente",
		}, commonReasons...),
	},
	model.OriginTroubleticket: {
		fields: []model.FieldSpec{
			{Label: "Número INC", Placeholder: "INC0000...", Required: true},
		},
		reasons: append([]string{
			"Reenviado a Territorio",
			"Escalamiento TDP",
			"Pedido con visita tec. Pendiente.",
			"Pedido con visita tec. Cancelado",
			"Alerta de masiva",
		}, commonReasons...),
	},
	model.OriginGestel: {
		fields: []model.FieldSpec{
			{Label: "Número de orden", Placeholder: "Orden Gestel", Required: true},
		},
		reasons: append([]string{
			"Pedido con visita tec. Pendiente.",
			"Pedido con visita tec. Cancelado",
			"Cambio de Facilidades",
			"Comercial pendiente",
		}, commonReasons...),
	},
}

// Origins returns the valid origins in display order.
func Origins() []model.Origin {
	out := make([]model.Origin, len(origins))
	copy(out, origins)
	return out
}

// Valid reports whether origin is part of the catalog.
func Valid(origin model.Origin) bool {
	_, ok := entries[origin]
	return ok
}

// ExtraFieldsFor returns the ordered extra-field specs for origin. Unknown or
// unset origins have no extra fields.
func ExtraFieldsFor(origin model.Origin) []model.FieldSpec {
	e, ok := entries[origin]
	if !ok {
		return nil
	}
	out := make([]model.FieldSpec, len(e.fields))
	copy(out, e.fields)
	return out
}

// ReasonsFor returns the reason list scoped to origin. Empty for unknown or
// unset origins; callers must treat that as "selection disabled".
func ReasonsFor(origin model.Origin) []string {
	e, ok := entries[origin]
	if !ok {
		return nil
	}
	out := make([]string, len(e.reasons))
	copy(out, e.reasons)
	return out
}
