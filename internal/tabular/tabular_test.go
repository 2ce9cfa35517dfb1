package tabular

import (
	"errors"
	"strings"
	"testing"
)

func TestFromTSV(t *testing.T) {
	text := "Reclamación\tCliente\tImporte\nR-1\tAcme\t1.500,00\nR-2\tBeta\t10\n"

	matrix := FromTSV(text)

	if len(matrix) != 3 {
		t.Fatalf("rows = %d, want 3", len(matrix))
	}
	if matrix[0][0] != "Reclamación" || matrix[1][2] != "1.500,00" {
		t.Errorf("unexpected matrix: %v", matrix)
	}
}

func TestFromTSVWindowsLineEndings(t *testing.T) {
	matrix := FromTSV("a\tb\r\nc\td\r\n")

	if len(matrix) != 2 {
		t.Fatalf("rows = %d, want 2", len(matrix))
	}
	if matrix[1][1] != "d" {
		t.Errorf("cell = %q, want d", matrix[1][1])
	}
}

func TestFromTSVDropsTrailingBlankLines(t *testing.T) {
	matrix := FromTSV("a\tb\n\n  \n")

	if len(matrix) != 1 {
		t.Errorf("rows = %d, want 1 (trailing blanks dropped)", len(matrix))
	}
}

func TestFromCSV(t *testing.T) {
	input := "Reclamación,Cliente\nR-1,Acme\nR-2,Beta,extra\n"

	matrix, err := FromCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	if len(matrix) != 3 {
		t.Fatalf("rows = %d, want 3", len(matrix))
	}
	// Ragged rows are allowed; the pipeline tolerates them.
	if len(matrix[2]) != 3 {
		t.Errorf("ragged row length = %d, want 3", len(matrix[2]))
	}
}

func TestFromFileUnsupportedExtension(t *testing.T) {
	_, err := FromFile("claims.pdf", strings.NewReader(""))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFromFileTSV(t *testing.T) {
	matrix, err := FromFile("claims.tsv", strings.NewReader("a\tb\n1\t2\n"))
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if len(matrix) != 2 || matrix[1][0] != "1" {
		t.Errorf("unexpected matrix: %v", matrix)
	}
}
