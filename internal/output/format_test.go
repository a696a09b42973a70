package output

import (
	"testing"

	"github.com/huntridge-labs/argus/internal/model"
)

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		in   string
		want Verbosity
	}{
		{"minimal", Minimal},
		{"standard", Standard},
		{"full", Full},
		{"", Standard},
		{"bogus", Standard},
	}
	for _, tt := range tests {
		if got := ParseVerbosity(tt.in); got != tt.want {
			t.Errorf("ParseVerbosity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatResultMinimalStripsDetail(t *testing.T) {
	r := model.Result{
		Change: model.Change{
			ResourceType: "aws_instance",
			ResourceName: "web",
			DiffText:     "- t3.micro\n+ t3.large",
		},
		Classification: model.Classification{
			Category:  model.Adaptive,
			Reasoning: "Instance type changes",
		},
	}

	got := FormatResult(r, Minimal)
	if got.Change.DiffText != "" {
		t.Error("Minimal should strip DiffText")
	}
	if got.Classification.Reasoning != "" {
		t.Error("Minimal should strip Reasoning")
	}
	if got.Classification.Category != model.Adaptive {
		t.Error("category must survive stripping")
	}
	// Original is untouched.
	if r.Change.DiffText == "" {
		t.Error("FormatResult must not mutate its input")
	}
}

func TestFormatResultStandardKeepsEverything(t *testing.T) {
	r := model.Result{
		Change:         model.Change{DiffText: "diff"},
		Classification: model.Classification{Reasoning: "why"},
	}
	for _, v := range []Verbosity{Standard, Full} {
		got := FormatResult(r, v)
		if got.Change.DiffText != "diff" || got.Classification.Reasoning != "why" {
			t.Errorf("verbosity %v stripped fields", v)
		}
	}
}
