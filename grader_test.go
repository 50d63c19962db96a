package main

import (
	"errors"
	"testing"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		name      string
		qtype     string
		correct   string
		submitted string
		want      bool
		wantErr   bool
	}{
		{
			name:  "single choice exact match",
			qtype: TypeSingleChoice, correct: "Amazon S3", submitted: "Amazon S3",
			want: true,
		},
		{
			name:  "single choice trims whitespace",
			qtype: TypeSingleChoice, correct: "Amazon S3", submitted: "  Amazon S3 ",
			want: true,
		},
		{
			name:  "single choice is case sensitive",
			qtype: TypeSingleChoice, correct: "Amazon S3", submitted: "amazon s3",
			want: false,
		},
		{
			name:  "multi choice order insensitive",
			qtype: TypeMultiChoice, correct: "A,B", submitted: "B,A",
			want: true,
		},
		{
			name:  "multi choice trims parts",
			qtype: TypeMultiChoice, correct: "A,B", submitted: " B , A ",
			want: true,
		},
		{
			name:  "multi choice duplicates are not collapsed",
			qtype: TypeMultiChoice, correct: "A,B", submitted: "A,A",
			want: false,
		},
		{
			name:  "multi choice missing part",
			qtype: TypeMultiChoice, correct: "A,B,C", submitted: "A,B",
			want: false,
		},
		{
			name:  "free text exact match",
			qtype: TypeFreeText, correct: "photosynthesis", submitted: "photosynthesis",
			want: true,
		},
		{
			name:  "free text case insensitive",
			qtype: TypeFreeText, correct: "Photosynthesis", submitted: "photosynthesis",
			want: true,
		},
		{
			name:  "free text near miss above threshold",
			qtype: TypeFreeText, correct: "photosynthesis", submitted: "photosinthesis",
			want: true, // one substitution over 14 runes
		},
		{
			name:  "free text below threshold",
			qtype: TypeFreeText, correct: "mitochondria", submitted: "mitochondira",
			want: false, // two edits over 12 runes scores 83
		},
		{
			name:  "free text unrelated",
			qtype: TypeFreeText, correct: "photosynthesis", submitted: "osmosis",
			want: false,
		},
		{
			name:  "unknown type",
			qtype: "essay", correct: "x", submitted: "x",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Grade(tt.qtype, tt.correct, tt.submitted)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuestionType) {
					t.Fatalf("Grade() error = %v, want ErrInvalidQuestionType", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Grade() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Grade() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarityRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"photosynthesis", "photosinthesis"},
		{"mitochondria", "mitochondira"},
		{"answer", "ANSWER"},
		{"short", "a much longer answer"},
		{"", "nonempty"},
	}
	for _, p := range pairs {
		ab := SimilarityRatio(p[0], p[1])
		ba := SimilarityRatio(p[1], p[0])
		if ab != ba {
			t.Errorf("SimilarityRatio(%q,%q) = %d but reversed = %d", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 100 {
			t.Errorf("SimilarityRatio(%q,%q) = %d, outside [0,100]", p[0], p[1], ab)
		}
	}
}

func TestSimilarityRatioNormalizes(t *testing.T) {
	if got := SimilarityRatio("  Paris ", "paris"); got != 100 {
		t.Errorf("SimilarityRatio with case/whitespace noise = %d, want 100", got)
	}
}
