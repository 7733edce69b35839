package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/ticketera/internal/model"
)

func completeDraft(t *testing.T) *model.Draft {
	t.Helper()
	d := model.NewDraft(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	SetOrigin(d, model.OriginWhatsApp)
	SetExtraField(d, 0, "51999888777")
	SetReason(d, "No contesta")
	SetDetails(d, "Cliente no responde tras tres intentos")
	return d
}

func TestValidate(t *testing.T) {
	t.Run("complete draft has no errors", func(t *testing.T) {
		assert.Empty(t, Validate(completeDraft(t)))
	})

	t.Run("empty draft accumulates every failure", func(t *testing.T) {
		d := model.NewDraft(time.Now())
		verrs := Validate(d)
		require.Len(t, verrs, 3)
		assert.Equal(t, "Falta el Origen.", verrs[0].Message)
		assert.Equal(t, "Falta el Motivo.", verrs[1].Message)
		assert.Equal(t, "Faltan los Detalles.", verrs[2].Message)
	})

	t.Run("missing required extra fields are reported per field", func(t *testing.T) {
		d := model.NewDraft(time.Now())
		SetOrigin(d, model.OriginCorreo)
		verrs := Validate(d)
		require.Len(t, verrs, 4)
		assert.Equal(t, "Falta: Asunto.", verrs[0].Message)
		assert.Equal(t, "Falta: Remitente.", verrs[1].Message)
	})

	t.Run("whitespace-only values do not count", func(t *testing.T) {
		d := completeDraft(t)
		SetExtraField(d, 0, "   ")
		SetDetails(d, "\t")
		verrs := Validate(d)
		require.Len(t, verrs, 2)
		assert.Equal(t, "Falta: Número.", verrs[0].Message)
		assert.Equal(t, "Faltan los Detalles.", verrs[1].Message)
	})

	t.Run("reason must belong to the origin's list", func(t *testing.T) {
		d := completeDraft(t)
		SetReason(d, "Configuración de HGU") // OperaX reason, not WhatsApp
		verrs := Validate(d)
		require.Len(t, verrs, 1)
		assert.Equal(t, "reason", verrs[0].Field)
	})

	t.Run("origins without extra fields validate on the rest", func(t *testing.T) {
		d := model.NewDraft(time.Now())
		SetOrigin(d, model.OriginLlamada)
		SetReason(d, "No contesta")
		SetDetails(d, "se valida en línea")
		assert.Empty(t, Validate(d))
	})
}

func TestBuildRecord(t *testing.T) {
	opened := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	closed := time.Date(2025, 3, 10, 9, 12, 30, 0, time.UTC)

	t.Run("multi-field origin concatenates labels", func(t *testing.T) {
		d := model.NewDraft(opened)
		SetOrigin(d, model.OriginCorreo)
		SetExtraField(d, 0, "A")
		SetExtraField(d, 1, "b@x.com")
		SetReason(d, "Escalamiento por correo")
		SetDetails(d, "detalle")

		rec := BuildRecord(d, "alice", closed)
		assert.Equal(t, "Asunto: A | Remitente: b@x.com", rec.Reference)
		assert.Equal(t, "alice", rec.Operator)
		assert.Equal(t, "Correo", rec.Origin)
		assert.Equal(t, opened, rec.OpenedAt)
		assert.Equal(t, closed, rec.ClosedAt)
	})

	t.Run("single-field origin uses the raw value", func(t *testing.T) {
		d := model.NewDraft(opened)
		SetOrigin(d, model.OriginWhatsApp)
		SetExtraField(d, 0, "51999")
		SetReason(d, "No contesta")
		SetDetails(d, "detalle")

		rec := BuildRecord(d, "bob", closed)
		assert.Equal(t, "51999", rec.Reference)
	})

	t.Run("zero-field origin has an empty reference", func(t *testing.T) {
		d := model.NewDraft(opened)
		SetOrigin(d, model.OriginLlamada)
		SetReason(d, "Validado")
		SetDetails(d, "detalle")

		rec := BuildRecord(d, "bob", closed)
		assert.Empty(t, rec.Reference)
	})
}

func TestSetOriginKeepsFieldValues(t *testing.T) {
	// Switching origin must not drop entered values: the operator may switch
	// back and forth while copying data over from another window.
	d := model.NewDraft(time.Now())
	SetOrigin(d, model.OriginCorreo)
	SetExtraField(d, 0, "asunto original")
	SetOrigin(d, model.OriginWhatsApp)
	SetOrigin(d, model.OriginCorreo)
	assert.Equal(t, "asunto original", d.Fields[0])
}

func TestReset(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	d := Reset(now)
	assert.Equal(t, now, d.StartedAt)
	assert.Empty(t, d.Origin)
	assert.Empty(t, d.Fields)
	assert.Empty(t, d.Reason)
	assert.Empty(t, d.Details)
}
