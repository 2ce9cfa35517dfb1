package core

// pipeline.go orchestrates ingestion: map the header row, transform each
// data row through the field registry, validate the business key,
// deduplicate within the batch and complete partial records with defaults.

// HeaderMap maps a column index in the raw matrix to the canonical field
// name that column feeds.
type HeaderMap map[int]string

// MapHeaders normalizes each header cell and looks it up in the synonym
// table. Unrecognized headers are silently dropped, which makes ingestion
// tolerant of extra columns and reordering at the cost of silently ignoring
// columns nobody declared.
func MapHeaders(rawHeaders []string) HeaderMap {
	hm := make(HeaderMap, len(rawHeaders))
	for i, h := range rawHeaders {
		if field, ok := headerSynonyms[NormalizeHeader(h)]; ok {
			hm[i] = field
		}
	}
	return hm
}

// TransformRow applies the kind-appropriate normalizer to every mapped
// column of one raw row and returns the resulting partial claim. Columns
// beyond the row's length and columns absent from the header map are
// ignored.
func TransformRow(row []string, hm HeaderMap) Claim {
	var c Claim
	for idx, field := range hm {
		if idx >= len(row) {
			continue
		}
		spec, ok := fieldsByName[field]
		if !ok || spec.Assign == nil {
			continue
		}
		raw := CleanCell(row[idx])
		if raw == "" && spec.Kind == FieldText {
			continue
		}
		spec.Assign(&c, raw)
	}
	return c
}

// Process runs the full ingestion pipeline over a raw matrix (row 0 =
// headers, rows 1..n = data). Fewer than two rows is an empty input, not an
// error. Rows without a numero are reported in Errors and ErrorRows; rows
// duplicating an already-accepted numero are dropped silently, first
// occurrence wins. Valid records keep their original row order.
func Process(matrix [][]string) ProcessResult {
	res := ProcessResult{
		Data:      []Claim{},
		Errors:    []RowError{},
		ErrorRows: [][]string{},
	}
	if len(matrix) < 2 {
		return res
	}

	hm := MapHeaders(matrix[0])
	seen := make(map[string]struct{})

	for i, row := range matrix[1:] {
		c := TransformRow(row, hm)

		if c.Numero == "" {
			res.Errors = append(res.Errors, RowError{
				RowIndex: i + 1,
				Message:  "missing required unique identifier (numero)",
				RowData:  row,
			})
			res.ErrorRows = append(res.ErrorRows, row)
			continue
		}

		if _, dup := seen[c.Numero]; dup {
			continue
		}
		seen[c.Numero] = struct{}{}

		complete(&c, hm)
		res.Data = append(res.Data, c)
	}
	return res
}

// complete fills the defaults of a partial claim. The accepted amount
// defaults to the claimed amount when the claim was accepted outright and
// no explicit accepted amount was mapped; the payment defaults to the
// accepted amount. fecha_creacion falls back to the quality date and
// otherwise stays empty, keeping ingestion deterministic across re-runs.
func complete(c *Claim, hm HeaderMap) {
	c.ID = c.Numero

	if c.Cliente == "" {
		c.Cliente = "N/A"
	}
	if c.Motivo == "" {
		c.Motivo = "N/A"
	}
	if c.MotivoCliente == "" {
		c.MotivoCliente = "N/A"
	}
	if c.Resolucion == "" {
		c.Resolucion = "N/A"
	}
	if c.Autorizacion == "" {
		c.Autorizacion = "N/A"
	}
	if c.MailAutorizacionAbono == "" {
		c.MailAutorizacionAbono = "no"
	}
	if c.Estado == "" {
		c.Estado = StatusNo
	}

	if c.MontoAceptado == 0 && !mapped(hm, "monto_aceptado") && c.Estado == StatusSi {
		c.MontoAceptado = c.MontoReclamado
	}
	if c.Abono == 0 && !mapped(hm, "abono") {
		c.Abono = c.MontoAceptado
	}

	if c.FechaCreacion == "" {
		c.FechaCreacion = c.FechaCalidad
	}
}

func mapped(hm HeaderMap, field string) bool {
	for _, f := range hm {
		if f == field {
			return true
		}
	}
	return false
}
