package fortune

import (
	"strings"
	"testing"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	a := BuildPrompt("Alice", "female", "1990-05-01", "14:30")
	b := BuildPrompt("Alice", "female", "1990-05-01", "14:30")
	if a != b {
		t.Fatal("prompt is not deterministic for identical input")
	}
}

func TestBuildPrompt_EmbedsFields(t *testing.T) {
	p := BuildPrompt("Alice", "female", "1990-05-01", "14:30")

	for _, want := range []string{
		"Name: Alice",
		"Gender: female",
		"DOB: 1990-05-01",
		"Year of the Fire Horse (Bing Wu)",
		"Fengshui report for 2026",
		`"kua": "Number"`,
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_BirthTimeConditional(t *testing.T) {
	with := BuildPrompt("Alice", "female", "1990-05-01", "14:30")
	without := BuildPrompt("Alice", "female", "1990-05-01", "")

	if !strings.Contains(with, "hour pillar") {
		t.Fatal("prompt with birth time should request the deeper hour-pillar analysis")
	}
	if !strings.Contains(with, "14:30") {
		t.Fatal("prompt with birth time should embed the time value")
	}
	if !strings.Contains(without, "The birth time is unknown") {
		t.Fatal("prompt without birth time should request the coarser analysis")
	}
	if strings.Contains(without, "hour pillar") {
		t.Fatal("prompt without birth time must not request the hour-pillar analysis")
	}

	// 除出生时间决定的那一句外，两种提示词逐字节一致
	withLines := strings.Split(with, "\n")
	withoutLines := strings.Split(without, "\n")
	if len(withLines) != len(withoutLines) {
		t.Fatalf("line count differs: %d vs %d", len(withLines), len(withoutLines))
	}
	diff := 0
	for i := range withLines {
		if withLines[i] != withoutLines[i] {
			diff++
		}
	}
	if diff != 1 {
		t.Fatalf("expected exactly 1 differing line, got %d", diff)
	}
}
