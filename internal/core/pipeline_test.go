package core

import "testing"

// ----------------------------------------------------------------------------
// MapHeaders Tests
// ----------------------------------------------------------------------------

func TestMapHeaders(t *testing.T) {
	headers := []string{"Reclamación", "Cliente", "Importe", "Estado", "Columna Desconocida"}
	hm := MapHeaders(headers)

	want := map[int]string{
		0: "numero",
		1: "cliente",
		2: "monto_reclamado",
		3: "estado",
	}

	if len(hm) != len(want) {
		t.Fatalf("MapHeaders returned %d entries, want %d: %v", len(hm), len(want), hm)
	}
	for idx, field := range want {
		if hm[idx] != field {
			t.Errorf("column %d mapped to %q, want %q", idx, hm[idx], field)
		}
	}
	if _, ok := hm[4]; ok {
		t.Error("unknown header should be dropped from the map")
	}
}

func TestMapHeadersReordered(t *testing.T) {
	hm := MapHeaders([]string{"Estado", "reclamacion", "IMPORTE (€)"})

	if hm[0] != "estado" || hm[1] != "numero" || hm[2] != "monto_reclamado" {
		t.Errorf("reordered headers mapped wrong: %v", hm)
	}
}

// ----------------------------------------------------------------------------
// TransformRow Tests
// ----------------------------------------------------------------------------

func TestTransformRow(t *testing.T) {
	hm := MapHeaders([]string{"Reclamación", "Cliente", "Importe", "Estado", "Data Calidad", "Días de Espera"})
	row := []string{"R-7", "Acme", "1.234,56", "aceptado", "15/3/2024", "12"}

	c := TransformRow(row, hm)

	if c.Numero != "R-7" {
		t.Errorf("Numero = %q, want R-7", c.Numero)
	}
	if c.Cliente != "Acme" {
		t.Errorf("Cliente = %q, want Acme", c.Cliente)
	}
	if c.MontoReclamado != 1234.56 {
		t.Errorf("MontoReclamado = %v, want 1234.56", c.MontoReclamado)
	}
	if c.Estado != StatusSi {
		t.Errorf("Estado = %q, want SI", c.Estado)
	}
	if c.FechaCalidad != "2024-03-15" {
		t.Errorf("FechaCalidad = %q, want 2024-03-15", c.FechaCalidad)
	}
	if c.DiasEspera != 12 {
		t.Errorf("DiasEspera = %d, want 12", c.DiasEspera)
	}
}

func TestTransformRowShortRow(t *testing.T) {
	hm := MapHeaders([]string{"Reclamación", "Cliente", "Importe"})
	c := TransformRow([]string{"R-1"}, hm)

	if c.Numero != "R-1" {
		t.Errorf("Numero = %q, want R-1", c.Numero)
	}
	if c.Cliente != "" || c.MontoReclamado != 0 {
		t.Errorf("missing cells should keep zero values, got %+v", c)
	}
}

// ----------------------------------------------------------------------------
// Process Tests
// ----------------------------------------------------------------------------

func TestProcessEndToEnd(t *testing.T) {
	matrix := [][]string{
		{"Reclamación", "Cliente", "Importe", "Estado"},
		{"R-1", "Acme", "1.500,00", "Si"},
		{"R-1", "Dup", "10", "No"},
		{"", "NoId", "5", "Si"},
	}

	res := Process(matrix)

	if len(res.Data) != 1 {
		t.Fatalf("valid records = %d, want 1", len(res.Data))
	}
	c := res.Data[0]
	if c.Numero != "R-1" || c.ID != "R-1" {
		t.Errorf("record key = id %q numero %q, want R-1/R-1", c.ID, c.Numero)
	}
	if c.MontoReclamado != 1500 {
		t.Errorf("MontoReclamado = %v, want 1500", c.MontoReclamado)
	}
	if c.Estado != StatusSi {
		t.Errorf("Estado = %q, want SI", c.Estado)
	}
	if c.Cliente != "Acme" {
		t.Errorf("Cliente = %q, want Acme (first occurrence wins)", c.Cliente)
	}

	if len(res.Errors) != 1 {
		t.Fatalf("errors = %d, want 1 (duplicates are dropped silently)", len(res.Errors))
	}
	if res.Errors[0].RowIndex != 3 {
		t.Errorf("error row index = %d, want 3", res.Errors[0].RowIndex)
	}
	if len(res.ErrorRows) != 1 || res.ErrorRows[0][1] != "NoId" {
		t.Errorf("error rows should carry the raw offending row, got %v", res.ErrorRows)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	for _, matrix := range [][][]string{
		nil,
		{},
		{{"Reclamación", "Cliente"}},
	} {
		res := Process(matrix)
		if len(res.Data) != 0 || len(res.Errors) != 0 || len(res.ErrorRows) != 0 {
			t.Errorf("Process(%v) should return empty results, got %+v", matrix, res)
		}
	}
}

func TestProcessDedupInvariant(t *testing.T) {
	matrix := [][]string{
		{"Reclamación", "Cliente"},
		{"R-1", "A"},
		{"R-2", "B"},
		{"R-1", "C"},
		{"R-3", "D"},
		{"R-2", "E"},
	}

	res := Process(matrix)

	if len(res.Data) != 3 {
		t.Fatalf("valid records = %d, want 3", len(res.Data))
	}
	seen := make(map[string]bool)
	for _, c := range res.Data {
		if c.ID != c.Numero {
			t.Errorf("id %q != numero %q", c.ID, c.Numero)
		}
		if seen[c.ID] {
			t.Errorf("duplicate id %q in output", c.ID)
		}
		seen[c.ID] = true
	}
	// Order preserved, first occurrence wins
	if res.Data[0].Cliente != "A" || res.Data[1].Cliente != "B" || res.Data[2].Cliente != "D" {
		t.Errorf("row order not preserved: %+v", res.Data)
	}
	if len(res.Errors) != 0 {
		t.Errorf("duplicates must not surface as errors, got %v", res.Errors)
	}
}

func TestProcessDefaults(t *testing.T) {
	matrix := [][]string{
		{"Reclamación", "Importe", "Estado", "Data Calidad"},
		{"R-9", "200", "si", "10/1/2024"},
	}

	res := Process(matrix)
	if len(res.Data) != 1 {
		t.Fatalf("valid records = %d, want 1", len(res.Data))
	}
	c := res.Data[0]

	if c.Cliente != "N/A" {
		t.Errorf("Cliente default = %q, want N/A", c.Cliente)
	}
	if c.Motivo != "N/A" || c.Resolucion != "N/A" || c.Autorizacion != "N/A" {
		t.Errorf("string placeholders not applied: %+v", c)
	}
	if c.MailAutorizacionAbono != "no" {
		t.Errorf("MailAutorizacionAbono default = %q, want no", c.MailAutorizacionAbono)
	}
	// Accepted claim with no accepted-amount column inherits the claimed amount
	if c.MontoAceptado != 200 {
		t.Errorf("MontoAceptado = %v, want 200", c.MontoAceptado)
	}
	// Payment defaults to the accepted amount
	if c.Abono != 200 {
		t.Errorf("Abono = %v, want 200", c.Abono)
	}
	// Creation date falls back to the quality date
	if c.FechaCreacion != "2024-01-10" {
		t.Errorf("FechaCreacion = %q, want 2024-01-10", c.FechaCreacion)
	}
}

func TestProcessAcceptedAmountNotInheritedWhenRejected(t *testing.T) {
	matrix := [][]string{
		{"Reclamación", "Importe", "Estado"},
		{"R-1", "300", "no"},
	}

	res := Process(matrix)
	if len(res.Data) != 1 {
		t.Fatalf("valid records = %d, want 1", len(res.Data))
	}
	if got := res.Data[0].MontoAceptado; got != 0 {
		t.Errorf("MontoAceptado = %v, want 0 for rejected claim", got)
	}
}

func TestProcessNoQualityDateLeavesCreationEmpty(t *testing.T) {
	matrix := [][]string{
		{"Reclamación", "Importe"},
		{"R-1", "10"},
	}

	res := Process(matrix)
	if len(res.Data) != 1 {
		t.Fatalf("valid records = %d, want 1", len(res.Data))
	}
	if got := res.Data[0].FechaCreacion; got != "" {
		t.Errorf("FechaCreacion = %q, want empty when no quality date exists", got)
	}
}

func TestProcessExplicitAcceptedAmountWins(t *testing.T) {
	matrix := [][]string{
		{"Reclamación", "Importe", "Importe Aceptado", "Estado"},
		{"R-1", "300", "120,50", "si"},
	}

	res := Process(matrix)
	if len(res.Data) != 1 {
		t.Fatalf("valid records = %d, want 1", len(res.Data))
	}
	c := res.Data[0]
	if c.MontoAceptado != 120.50 {
		t.Errorf("MontoAceptado = %v, want 120.50", c.MontoAceptado)
	}
	if c.Abono != 120.50 {
		t.Errorf("Abono = %v, want accepted amount fallback 120.50", c.Abono)
	}
}
