package questionnaire

import (
	"reflect"
	"testing"
)

func TestStoreUpdateMergesWithoutClobbering(t *testing.T) {
	t.Parallel()
	s := NewStore()

	s.Update(Answers{Gender: String("male"), Age: Int(30)})
	s.Update(Answers{Weight: Float(82)})

	got := s.Answers()
	if got.Gender == nil || *got.Gender != "male" {
		t.Fatalf("gender lost after second update: %+v", got)
	}
	if got.Age == nil || *got.Age != 30 {
		t.Fatalf("age lost after second update: %+v", got)
	}
	if got.Weight == nil || *got.Weight != 82 {
		t.Fatalf("weight not recorded: %+v", got)
	}
}

func TestStoreUpdateLastWriteWins(t *testing.T) {
	t.Parallel()
	s := NewStore()

	s.Update(Answers{SpecificDiet: String("vegan")})
	s.Update(Answers{SpecificDiet: String("keto")})

	got := s.Answers()
	if got.SpecificDiet == nil || *got.SpecificDiet != "keto" {
		t.Fatalf("expected last write to win, got %+v", got.SpecificDiet)
	}
}

func TestStoreAnswersReturnsCopies(t *testing.T) {
	t.Parallel()
	s := NewStore()
	s.Update(Answers{CuisinePreferences: []string{"italian", "thai"}})

	got := s.Answers()
	got.CuisinePreferences[0] = "mutated"

	again := s.Answers()
	if again.CuisinePreferences[0] != "italian" {
		t.Fatalf("internal slice was mutated through the returned copy")
	}
}

func TestStoreSliceReplacedWholesale(t *testing.T) {
	t.Parallel()
	s := NewStore()
	s.Update(Answers{FoodsToAvoid: []string{"peanuts", "shellfish"}})
	s.Update(Answers{FoodsToAvoid: []string{"dairy"}})

	got := s.Answers()
	if !reflect.DeepEqual(got.FoodsToAvoid, []string{"dairy"}) {
		t.Fatalf("expected slice replaced, got %v", got.FoodsToAvoid)
	}
}

func TestStoreReset(t *testing.T) {
	t.Parallel()
	s := NewStore()
	s.Update(Answers{Gender: String("female"), Age: Int(25)})
	s.SetStep(9)

	s.Reset()

	if s.Step() != InitialStep {
		t.Fatalf("step = %d after reset, want %d", s.Step(), InitialStep)
	}
	if got := s.Answers(); got.Gender != nil || got.Age != nil {
		t.Fatalf("answers survived reset: %+v", got)
	}
}

func TestStoreLoadClampsStep(t *testing.T) {
	t.Parallel()
	s := NewStore()
	s.Load(Answers{Age: Int(40)}, -3)

	if s.Step() != InitialStep {
		t.Fatalf("step = %d, want clamp to %d", s.Step(), InitialStep)
	}
	if got := s.Answers(); got.Age == nil || *got.Age != 40 {
		t.Fatalf("loaded answers missing: %+v", got)
	}
}
