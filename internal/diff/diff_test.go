package diff

import (
	"testing"

	"github.com/claimboard/claimboard/internal/core"
)

func claim(id string, monto float64, estado core.Status) core.Claim {
	return core.Claim{
		ID:             id,
		Numero:         id,
		Cliente:        "Acme",
		MontoReclamado: monto,
		Estado:         estado,
	}
}

func TestCompareIdentity(t *testing.T) {
	records := []core.Claim{
		claim("R-1", 100, core.StatusSi),
		claim("R-2", 250, core.StatusNo),
	}

	res := Compare(records, records)

	if len(res.Added) != 0 || len(res.Removed) != 0 || len(res.Modified) != 0 {
		t.Errorf("comparing a snapshot against itself must be empty, got %+v", res)
	}
}

func TestCompareAddedRemoved(t *testing.T) {
	a := claim("A", 10, core.StatusNo)
	b := claim("B", 20, core.StatusNo)
	c := claim("C", 30, core.StatusNo)

	// previous {A,B} -> current {B,C}
	res := Compare([]core.Claim{b, c}, []core.Claim{a, b})

	if len(res.Added) != 1 || res.Added[0].ID != "C" {
		t.Errorf("added = %+v, want [C]", res.Added)
	}
	if len(res.Removed) != 1 || res.Removed[0].ID != "A" {
		t.Errorf("removed = %+v, want [A]", res.Removed)
	}
	if len(res.Modified) != 0 {
		t.Errorf("modified = %+v, want empty (B unchanged)", res.Modified)
	}
}

func TestCompareModified(t *testing.T) {
	prev := claim("R-1", 100, core.StatusNo)
	cur := claim("R-1", 150, core.StatusSi)
	cur.Observaciones = "revisado"

	res := Compare([]core.Claim{cur}, []core.Claim{prev})

	if len(res.Modified) != 1 {
		t.Fatalf("modified = %d entries, want 1", len(res.Modified))
	}
	d := res.Modified[0]
	if d.ClaimID != "R-1" {
		t.Errorf("ClaimID = %q, want R-1", d.ClaimID)
	}
	if len(d.Changes) != 3 {
		t.Fatalf("changes = %d, want 3 (monto_reclamado, estado, observaciones): %+v", len(d.Changes), d.Changes)
	}

	byField := make(map[string]FieldChange)
	for _, ch := range d.Changes {
		byField[ch.Field] = ch
	}
	if ch := byField["monto_reclamado"]; ch.OldValue != 100.0 || ch.NewValue != 150.0 {
		t.Errorf("monto_reclamado change = %+v", ch)
	}
	if ch := byField["estado"]; ch.OldValue != core.StatusNo || ch.NewValue != core.StatusSi {
		t.Errorf("estado change = %+v", ch)
	}
	if ch := byField["observaciones"]; ch.OldValue != "" || ch.NewValue != "revisado" {
		t.Errorf("observaciones change = %+v", ch)
	}
}

func TestCompareSymmetry(t *testing.T) {
	a := []core.Claim{
		claim("R-1", 100, core.StatusSi),
		claim("R-2", 50, core.StatusNo),
	}
	modified := claim("R-2", 75, core.StatusParcial)
	b := []core.Claim{
		modified,
		claim("R-3", 30, core.StatusNo),
	}

	ab := Compare(a, b)
	ba := Compare(b, a)

	if len(ab.Added) != len(ba.Removed) || ab.Added[0].ID != ba.Removed[0].ID {
		t.Errorf("added(a,b) %+v should mirror removed(b,a) %+v", ab.Added, ba.Removed)
	}
	if len(ab.Removed) != len(ba.Added) || ab.Removed[0].ID != ba.Added[0].ID {
		t.Errorf("removed(a,b) %+v should mirror added(b,a) %+v", ab.Removed, ba.Added)
	}
	if len(ab.Modified) != 1 || len(ba.Modified) != 1 {
		t.Fatalf("both directions should report one modified claim")
	}
	if ab.Modified[0].Current != ba.Modified[0].Previous || ab.Modified[0].Previous != ba.Modified[0].Current {
		t.Error("modified entries should swap current/previous between directions")
	}
}

func TestCompareNoNoopDiffs(t *testing.T) {
	same := claim("R-1", 100, core.StatusSi)
	res := Compare([]core.Claim{same, claim("R-2", 1, core.StatusNo)}, []core.Claim{same})

	for _, d := range res.Modified {
		if len(d.Changes) == 0 {
			t.Errorf("claim %s reported modified with zero changes", d.ClaimID)
		}
	}
	if len(res.Modified) != 0 {
		t.Errorf("unchanged claim must not appear in modified: %+v", res.Modified)
	}
}

func TestCompareOrderFollowsInput(t *testing.T) {
	cur := []core.Claim{
		claim("N-1", 1, core.StatusNo),
		claim("N-2", 2, core.StatusNo),
		claim("N-3", 3, core.StatusNo),
	}
	res := Compare(cur, nil)

	if len(res.Added) != 3 {
		t.Fatalf("added = %d, want 3", len(res.Added))
	}
	for i, want := range []string{"N-1", "N-2", "N-3"} {
		if res.Added[i].ID != want {
			t.Errorf("added[%d] = %s, want %s", i, res.Added[i].ID, want)
		}
	}
}
