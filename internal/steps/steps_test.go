package steps

import (
	"testing"
)

func TestSplit_Empty(t *testing.T) {
	if got := Split("  \n "); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSplit_SingleParagraph(t *testing.T) {
	got := Split("Mix everything together.")
	if len(got) != 1 {
		t.Fatalf("expected 1 step, got %d", len(got))
	}
	if got[0].Text != "Mix everything together." {
		t.Errorf("unexpected text %q", got[0].Text)
	}
	if got[0].Number != 1 {
		t.Errorf("unexpected number %d", got[0].Number)
	}
}

func TestSplit_BlankLines(t *testing.T) {
	got := Split("Preheat the oven.\n\nMix the batter.\nPour into tin.\n\n\nBake 30 minutes.")
	if len(got) != 3 {
		t.Fatalf("expected 3 steps, got %d: %+v", len(got), got)
	}
	if got[1].Text != "Mix the batter.\nPour into tin." {
		t.Errorf("unexpected second step %q", got[1].Text)
	}
	if got[2].Number != 3 || got[2].Text != "Bake 30 minutes." {
		t.Errorf("unexpected third step %+v", got[2])
	}
}

func TestSplit_NumberedList(t *testing.T) {
	got := Split("1. Chop onions\n2) Fry them\n- Season\nStep 4: Serve")
	want := []string{"Chop onions", "Fry them", "Season", "Serve"}
	if len(got) != len(want) {
		t.Fatalf("expected %d steps, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("step %d: expected %q, got %q", i+1, w, got[i].Text)
		}
		if got[i].Number != i+1 {
			t.Errorf("step %d: numbered %d", i+1, got[i].Number)
		}
	}
}
