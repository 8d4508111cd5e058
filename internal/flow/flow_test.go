package flow

import (
	"errors"
	"testing"
)

func advance(t *testing.T, st *State, value string) {
	t.Helper()
	if err := st.Advance(value); err != nil {
		t.Fatalf("advance %q: %v", value, err)
	}
}

func TestBouquetFlowHappyPath(t *testing.T) {
	st := Start(NewBouquetDefinition())

	advance(t, st, "red")
	advance(t, st, "15")
	advance(t, st, "ribbon, luxury")

	if !st.AtSummary() {
		t.Fatal("expected flow at summary after all steps")
	}

	fields, err := st.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	b, err := BouquetFromFields(fields)
	if err != nil {
		t.Fatalf("bouquet from fields: %v", err)
	}
	if b.Color != "red" || b.Quantity != "15" {
		t.Fatalf("unexpected bouquet %+v", b)
	}
	if b.Price != 2400 {
		t.Fatalf("expected price 2400 (base + ribbon + luxury), got %d", b.Price)
	}
}

func TestInvalidInputLeavesStateUnchanged(t *testing.T) {
	st := Start(NewBouquetDefinition())
	advance(t, st, "red")

	before, _ := st.StepNumber()
	err := st.Advance("999")
	if !errors.Is(err, ErrInvalidStepInput) {
		t.Fatalf("expected ErrInvalidStepInput, got %v", err)
	}

	after, _ := st.StepNumber()
	if after != before {
		t.Fatalf("invalid input must not move the flow: step %d -> %d", before, after)
	}
	if _, ok := st.Fields()["quantity"]; ok {
		t.Fatal("invalid input must not store a field")
	}
}

func TestMultiSelectParsing(t *testing.T) {
	st := Start(NewBouquetDefinition())
	advance(t, st, "white")
	advance(t, st, "7")

	if err := st.Advance("ribbon, toy, ribbon"); err != nil {
		t.Fatalf("advance addons: %v", err)
	}

	addons, ok := st.Fields()["addons"].([]string)
	if !ok {
		t.Fatalf("expected []string addons, got %T", st.Fields()["addons"])
	}
	if len(addons) != 2 || addons[0] != "ribbon" || addons[1] != "toy" {
		t.Fatalf("expected deduplicated [ribbon toy], got %v", addons)
	}
}

func TestMultiSelectRejectsUnknownOption(t *testing.T) {
	st := Start(NewBouquetDefinition())
	advance(t, st, "white")
	advance(t, st, "7")

	if err := st.Advance("ribbon, glitter"); !errors.Is(err, ErrInvalidStepInput) {
		t.Fatalf("expected ErrInvalidStepInput, got %v", err)
	}
}

func TestStepBackDiscardsReenteredValue(t *testing.T) {
	st := Start(NewBouquetDefinition())
	advance(t, st, "red")
	advance(t, st, "15")

	st.StepBack()

	if n, _ := st.StepNumber(); n != 2 {
		t.Fatalf("expected to be back on step 2, got %d", n)
	}
	if _, ok := st.Fields()["quantity"]; ok {
		t.Fatal("stepping back must discard the re-entered step's value")
	}
	if got := st.Fields()["color"]; got != "red" {
		t.Fatalf("earlier steps must keep their values, got %v", got)
	}
}

func TestStepBackAtFirstStepIsNoOp(t *testing.T) {
	st := Start(NewBouquetDefinition())
	st.StepBack()
	if n, _ := st.StepNumber(); n != 1 {
		t.Fatalf("expected to stay on step 1, got %d", n)
	}
}

func TestFinalizeBeforeSummaryFails(t *testing.T) {
	st := Start(NewBouquetDefinition())
	advance(t, st, "red")

	if _, err := st.Finalize(); !errors.Is(err, ErrFlowIncomplete) {
		t.Fatalf("expected ErrFlowIncomplete, got %v", err)
	}
}

func TestAdvanceAtSummaryFails(t *testing.T) {
	st := Start(NewBouquetDefinition())
	advance(t, st, "red")
	advance(t, st, "5")
	advance(t, st, "none")

	if err := st.Advance("red"); !errors.Is(err, ErrInvalidStepInput) {
		t.Fatalf("expected ErrInvalidStepInput at summary, got %v", err)
	}
}

func TestAddFlowerValidation(t *testing.T) {
	st := Start(NewAddFlowerDefinition())

	advance(t, st, "Sunflowers")
	advance(t, st, "Bright and big")

	if err := st.Advance("-5"); !errors.Is(err, ErrInvalidStepInput) {
		t.Fatalf("expected price validation failure, got %v", err)
	}
	if err := st.Advance("abc"); !errors.Is(err, ErrInvalidStepInput) {
		t.Fatalf("expected price validation failure, got %v", err)
	}
	advance(t, st, "1700")

	advance(t, st, "other")

	if err := st.Advance("ftp://nope"); !errors.Is(err, ErrInvalidStepInput) {
		t.Fatalf("expected photo validation failure, got %v", err)
	}
	advance(t, st, "skip")

	if !st.AtSummary() {
		t.Fatal("expected flow at summary")
	}
}
