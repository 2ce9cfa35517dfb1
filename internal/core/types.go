// Package core implements the claim ingestion pipeline: header mapping,
// field normalization, row transformation, deduplication and defaulting.
// This package has no UI or storage dependencies and can be driven by any
// frontend that produces a raw cell matrix.
package core

// Status is the resolution state of a claim. It is a closed trichotomy:
// every raw input maps to exactly one of the three values, with StatusNo
// as the fallback for empty or unrecognized input.
type Status string

const (
	StatusSi      Status = "SI"
	StatusNo      Status = "NO"
	StatusParcial Status = "PARCIAL"
)

// Claim is one normalized customer claim. Numero is the unique business key
// and ID always equals Numero. Dates are canonical YYYY-MM-DD strings, or
// empty when the source value was absent or unparseable.
type Claim struct {
	ID                    string  `json:"id"`
	Numero                string  `json:"numero"`
	Cliente               string  `json:"cliente"`
	MontoReclamado        float64 `json:"monto_reclamado"`
	MontoAceptado         float64 `json:"monto_aceptado"`
	Motivo                string  `json:"motivo"`
	MotivoCliente         string  `json:"motivo_cliente"`
	Resolucion            string  `json:"resolucion"`
	FechaCalidad          string  `json:"fecha_calidad"`
	MailAutorizacionAbono string  `json:"mail_autorizacion_abono"`
	Autorizacion          string  `json:"autorizacion"`
	Abono                 float64 `json:"abono"`
	EnvioACliente         string  `json:"envio_a_cliente"`
	FechaCierre           string  `json:"fecha_cierre"`
	DiasEspera            int     `json:"dias_espera"`
	Estado                Status  `json:"estado"`
	Observaciones         string  `json:"observaciones"`
	FechaCreacion         string  `json:"fecha_creacion"`
}

// FieldKind selects which normalizer applies to a mapped column.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldAmount
	FieldDate
	FieldStatus
	FieldInt
)

// FieldSpec declares one canonical claim attribute. The transformer uses
// Assign to write a normalized raw cell into a claim; the diff engine uses
// Value to read the attribute back out. Attributes without an Assign func
// (id, fecha_creacion) are derived during completion, never mapped from a
// column.
type FieldSpec struct {
	Name   string // canonical field name, matches the JSON tag
	Kind   FieldKind
	Assign func(c *Claim, raw string)
	Value  func(c *Claim) any
}

// RowError describes one data row that was excluded from the valid output.
// RowIndex is 1-based over the data rows (the header row is not counted),
// matching what a user sees in an error summary.
type RowError struct {
	RowIndex int      `json:"rowIndex"`
	Message  string   `json:"error"`
	RowData  []string `json:"rowData"`
}

// ProcessResult is the output of one ingestion run. Malformed rows are data,
// not failures: they are excluded from Data and reported in Errors, with the
// raw cells repeated in ErrorRows for re-display.
type ProcessResult struct {
	Data      []Claim    `json:"data"`
	Errors    []RowError `json:"errors"`
	ErrorRows [][]string `json:"errorRows"`
}
