package types

import "testing"

func TestRecordIDDeterministic(t *testing.T) {
	a := RecordID("Attention Is All You Need", 2017, SourceArxiv)
	b := RecordID("Attention Is All You Need", 2017, SourceArxiv)
	if a != b {
		t.Errorf("RecordID not stable: %q vs %q", a, b)
	}
	if len(a) != 12 {
		t.Errorf("RecordID length = %d, want 12", len(a))
	}
}

func TestRecordIDNormalizesTitle(t *testing.T) {
	a := RecordID("  Deep Learning Survey ", 2020, SourceCrossref)
	b := RecordID("deep learning survey", 2020, SourceCrossref)
	if a != b {
		t.Errorf("RecordID should normalize case and whitespace: %q vs %q", a, b)
	}
}

func TestRecordIDDistinguishesInputs(t *testing.T) {
	base := RecordID("Deep Learning Survey", 2020, SourceCrossref)
	tests := []struct {
		name string
		got  string
	}{
		{"different title", RecordID("Deep Learning Review", 2020, SourceCrossref)},
		{"different year", RecordID("Deep Learning Survey", 2021, SourceCrossref)},
		{"different source", RecordID("Deep Learning Survey", 2020, SourceArxiv)},
	}
	for _, tt := range tests {
		if tt.got == base {
			t.Errorf("%s: RecordID collided with base %q", tt.name, base)
		}
	}
}

func TestDisplayScore(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{0.954, 0.95},
		{0.955, 0.96},
		{0.3, 0.3},
		{1.0, 1.0},
	}
	for _, tt := range tests {
		r := Record{ReliabilityScore: tt.score}
		if got := r.DisplayScore(); got != tt.want {
			t.Errorf("DisplayScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
