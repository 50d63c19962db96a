package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// FreeTextThreshold is the minimum similarity ratio for a free-text answer
// to count as correct.
const FreeTextThreshold = 85

// ErrInvalidQuestionType means a question row carries a type the grader does
// not know. That is a data-integrity fault, not bad user input.
var ErrInvalidQuestionType = errors.New("invalid question type")

// Grade compares a submitted answer against the canonical correct answer
// under the semantics of the question type.
func Grade(questionType, correctAnswer, submitted string) (bool, error) {
	switch questionType {
	case TypeSingleChoice:
		return strings.TrimSpace(submitted) == strings.TrimSpace(correctAnswer), nil
	case TypeMultiChoice:
		return equalParts(normalizeParts(submitted), normalizeParts(correctAnswer)), nil
	case TypeFreeText:
		return SimilarityRatio(submitted, correctAnswer) >= FreeTextThreshold, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidQuestionType, questionType)
	}
}

// normalizeParts splits a comma-joined answer and sorts the trimmed parts.
// Duplicates are kept, so "A,A" and "A" normalize differently on purpose.
func normalizeParts(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	sort.Strings(out)
	return out
}

func equalParts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var similarityParams = levenshtein.NewParams()

// SimilarityRatio returns an edit-distance-based similarity in [0,100].
// Both sides are trimmed and lowercased first, and equal insert/delete
// costs keep the score symmetric.
func SimilarityRatio(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return int(math.Round(levenshtein.Similarity(a, b, similarityParams) * 100))
}
