package questionnaire

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultFlowSkipsInfoAndPayment(t *testing.T) {
	t.Parallel()
	seq := NewSequencer(DefaultStepsConfig())

	for _, st := range seq.Active() {
		if st.Info {
			t.Fatalf("info step %q active under default config", st.Slug)
		}
		if st.Slug == "payment" {
			t.Fatalf("payment step active under default config")
		}
	}
	if got := len(seq.Active()); got != 16 {
		t.Fatalf("active steps = %d, want 16", got)
	}
}

func TestFullFlowOrder(t *testing.T) {
	t.Parallel()
	seq := NewSequencer(StepsConfig{IncludeInfoSteps: true, IncludePayment: true})

	if got := len(seq.Active()); got != 21 {
		t.Fatalf("active steps = %d, want 21", got)
	}
	if seq.First().Slug != "gender" {
		t.Fatalf("first step = %q, want gender", seq.First().Slug)
	}
	last := seq.Active()[len(seq.Active())-1]
	if last.Slug != "payment" {
		t.Fatalf("last step = %q, want payment", last.Slug)
	}
}

func TestNextAndBackArePositional(t *testing.T) {
	t.Parallel()
	seq := NewSequencer(DefaultStepsConfig())

	// Info steps are disabled, so workout jumps straight to measurements.
	next, ok := seq.Next("workout")
	if !ok || next.Slug != "measurements" {
		t.Fatalf("next after workout = %q ok=%v, want measurements", next.Slug, ok)
	}
	back, ok := seq.Back("measurements")
	if !ok || back.Slug != "workout" {
		t.Fatalf("back from measurements = %q ok=%v, want workout", back.Slug, ok)
	}

	if _, ok := seq.Back("gender"); ok {
		t.Fatalf("first step should have no back")
	}
	last := seq.Active()[len(seq.Active())-1]
	if _, ok := seq.Next(last.Slug); ok {
		t.Fatalf("last step should have no next")
	}
}

func TestDisabledSlugRemoved(t *testing.T) {
	t.Parallel()
	seq := NewSequencer(StepsConfig{Disabled: []string{"motivation"}})

	if _, ok := seq.Find("motivation"); ok {
		t.Fatalf("disabled step still active")
	}
	next, ok := seq.Next("avoid")
	if !ok || next.Slug != "meals" {
		t.Fatalf("next after avoid = %q ok=%v, want meals", next.Slug, ok)
	}
}

func TestStepAtUsesFullTable(t *testing.T) {
	t.Parallel()
	seq := NewSequencer(DefaultStepsConfig())

	// Index 3 is an info step; lookup by index still resolves it.
	st, ok := seq.StepAt(3)
	if !ok || st.Slug != "info-sustainable" {
		t.Fatalf("StepAt(3) = %q ok=%v, want info-sustainable", st.Slug, ok)
	}
	if _, ok := seq.StepAt(0); ok {
		t.Fatalf("StepAt(0) should fail")
	}
	if _, ok := seq.StepAt(22); ok {
		t.Fatalf("StepAt(22) should fail")
	}
}

func TestProgress(t *testing.T) {
	t.Parallel()
	seq := NewSequencer(DefaultStepsConfig())

	pos, total := seq.Progress("gender")
	if pos != 1 || total != 16 {
		t.Fatalf("Progress(gender) = %d/%d, want 1/16", pos, total)
	}
	pos, _ = seq.Progress("no-such-step")
	if pos != 0 {
		t.Fatalf("Progress(unknown) = %d, want 0", pos)
	}
}

func TestLoadStepsConfigMissingFile(t *testing.T) {
	t.Parallel()
	cfg, err := LoadStepsConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.IncludeInfoSteps || cfg.IncludePayment {
		t.Fatalf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadStepsConfigParsesYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "steps.yaml")
	content := "include_info_steps: true\ndisabled:\n  - fasting\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadStepsConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.IncludeInfoSteps {
		t.Fatalf("include_info_steps not parsed")
	}
	seq := NewSequencer(cfg)
	if _, ok := seq.Find("fasting"); ok {
		t.Fatalf("fasting should be disabled")
	}
	if _, ok := seq.Find("info-progress"); !ok {
		t.Fatalf("info steps should be active")
	}
}
