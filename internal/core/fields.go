package core

// fields.go declares the canonical claim attributes once, as a dispatch
// table. The row transformer and the diff engine both iterate this table,
// so adding an attribute here automatically makes it parse and diff.

// claimFields lists every declared claim attribute in canonical order.
// Assign is nil for derived attributes (id, fecha_creacion); those are
// filled in by the pipeline's completion step, never from a mapped column.
var claimFields = []FieldSpec{
	{Name: "id", Kind: FieldText, Value: func(c *Claim) any { return c.ID }},
	{Name: "numero", Kind: FieldText,
		Assign: func(c *Claim, raw string) { c.Numero = raw },
		Value:  func(c *Claim) any { return c.Numero }},
	{Name: "cliente", Kind: FieldText,
		Assign: func(c *Claim, raw string) { c.Cliente = raw },
		Value:  func(c *Claim) any { return c.Cliente }},
	{Name: "monto_reclamado", Kind: FieldAmount,
		Assign: func(c *Claim, raw string) { c.MontoReclamado = ParseAmount(raw) },
		Value:  func(c *Claim) any { return c.MontoReclamado }},
	{Name: "monto_aceptado", Kind: FieldAmount,
		Assign: func(c *Claim, raw string) { c.MontoAceptado = ParseAmount(raw) },
		Value:  func(c *Claim) any { return c.MontoAceptado }},
	{Name: "motivo", Kind: FieldText,
		Assign: func(c *Claim, raw string) { c.Motivo = raw },
		Value:  func(c *Claim) any { return c.Motivo }},
	{Name: "motivo_cliente", Kind: FieldText,
		Assign: func(c *Claim, raw string) { c.MotivoCliente = raw },
		Value:  func(c *Claim) any { return c.MotivoCliente }},
	{Name: "resolucion", Kind: FieldText,
		Assign: func(c *Claim, raw string) { c.Resolucion = raw },
		Value:  func(c *Claim) any { return c.Resolucion }},
	{Name: "fecha_calidad", Kind: FieldDate,
		Assign: func(c *Claim, raw string) { c.FechaCalidad = ParseDate(raw) },
		Value:  func(c *Claim) any { return c.FechaCalidad }},
	{Name: "mail_autorizacion_abono", Kind: FieldText,
		Assign: func(c *Claim, raw string) { c.MailAutorizacionAbono = raw },
		Value:  func(c *Claim) any { return c.MailAutorizacionAbono }},
	{Name: "autorizacion", Kind: FieldText,
		Assign: func(c *Claim, raw string) { c.Autorizacion = raw },
		Value:  func(c *Claim) any { return c.Autorizacion }},
	{Name: "abono", Kind: FieldAmount,
		Assign: func(c *Claim, raw string) { c.Abono = ParseAmount(raw) },
		Value:  func(c *Claim) any { return c.Abono }},
	{Name: "envio_a_cliente", Kind: FieldText,
		Assign: func(c *Claim, raw string) { c.EnvioACliente = raw },
		Value:  func(c *Claim) any { return c.EnvioACliente }},
	{Name: "fecha_cierre", Kind: FieldDate,
		Assign: func(c *Claim, raw string) { c.FechaCierre = ParseDate(raw) },
		Value:  func(c *Claim) any { return c.FechaCierre }},
	{Name: "dias_espera", Kind: FieldInt,
		Assign: func(c *Claim, raw string) { c.DiasEspera = int(ParseAmount(raw)) },
		Value:  func(c *Claim) any { return c.DiasEspera }},
	{Name: "estado", Kind: FieldStatus,
		Assign: func(c *Claim, raw string) { c.Estado = ParseStatus(raw) },
		Value:  func(c *Claim) any { return c.Estado }},
	{Name: "observaciones", Kind: FieldText,
		Assign: func(c *Claim, raw string) { c.Observaciones = raw },
		Value:  func(c *Claim) any { return c.Observaciones }},
	{Name: "fecha_creacion", Kind: FieldDate, Value: func(c *Claim) any { return c.FechaCreacion }},
}

// fieldsByName indexes claimFields for the header mapper.
var fieldsByName = func() map[string]FieldSpec {
	m := make(map[string]FieldSpec, len(claimFields))
	for _, f := range claimFields {
		m[f.Name] = f
	}
	return m
}()

// Fields returns the declared claim attributes in canonical order.
func Fields() []FieldSpec {
	return claimFields
}

// headerSynonyms maps normalized source-language header variants to
// canonical field names. Extending supported input formats means extending
// this table, not changing pipeline logic. Headers are looked up after
// NormalizeHeader, so accented variants collapse onto their plain forms.
var headerSynonyms = map[string]string{
	"reclamacion":             "numero",
	"cliente":                 "cliente",
	"importe":                 "monto_reclamado",
	"importe (€)":             "monto_reclamado",
	"importe aceptado":        "monto_aceptado",
	"motivo":                  "motivo",
	"motivo cliente":          "motivo_cliente",
	"resolucion":              "resolucion",
	"data calidad":            "fecha_calidad",
	"mail autorizacion abono": "mail_autorizacion_abono",
	"autorizacion":            "autorizacion",
	"abono":                   "abono",
	"envio a cliente":         "envio_a_cliente",
	"tancada a sap":           "fecha_cierre",
	"tancada sap":             "fecha_cierre",
	"dias de espera":          "dias_espera",
	"estado":                  "estado",
	"observaciones":           "observaciones",
}
