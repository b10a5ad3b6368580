package services

import (
	"strings"
	"testing"
)

func TestDetectCriticalKeywords(t *testing.T) {
	detector := NewCrisisDetector()

	tests := []struct {
		name    string
		message string
	}{
		{"plain", "I want to kill myself"},
		{"uppercase", "KILL MYSELF TODAY"},
		{"mixed case", "I Want To Die"},
		{"embedded in sentence", "sometimes I think about suicide a lot"},
		{"self harm hyphenated", "I keep thinking about self-harm"},
		{"leading whitespace", "   end my life   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := detector.Detect(tt.message)
			if !verdict.IsCrisis {
				t.Fatalf("Detect(%q).IsCrisis = false, want true", tt.message)
			}
			if verdict.Severity != SeverityCritical {
				t.Errorf("Severity = %q, want %q", verdict.Severity, SeverityCritical)
			}
			if verdict.RecommendedAction != ActionIntervene {
				t.Errorf("RecommendedAction = %q, want %q", verdict.RecommendedAction, ActionIntervene)
			}
			if len(verdict.KeywordsDetected) == 0 {
				t.Error("KeywordsDetected is empty for a critical message")
			}
		})
	}
}

func TestDetectModerateKeywords(t *testing.T) {
	detector := NewCrisisDetector()

	verdict := detector.Detect("Everything feels hopeless and I am completely overwhelmed")
	if !verdict.IsCrisis {
		t.Fatal("expected moderate message to flag a crisis")
	}
	if verdict.Severity != SeverityModerate {
		t.Errorf("Severity = %q, want %q", verdict.Severity, SeverityModerate)
	}
	if verdict.RecommendedAction != ActionResources {
		t.Errorf("RecommendedAction = %q, want %q", verdict.RecommendedAction, ActionResources)
	}
	if len(verdict.KeywordsDetected) != 2 {
		t.Errorf("KeywordsDetected = %v, want both matched keywords", verdict.KeywordsDetected)
	}
}

func TestDetectCriticalOverridesModerate(t *testing.T) {
	detector := NewCrisisDetector()

	// Message contains both a moderate and a critical keyword; severity must
	// be critical and only critical keywords reported.
	verdict := detector.Detect("I feel hopeless and I am suicidal")
	if verdict.Severity != SeverityCritical {
		t.Fatalf("Severity = %q, want %q", verdict.Severity, SeverityCritical)
	}
	for _, kw := range verdict.KeywordsDetected {
		if kw == "hopeless" {
			t.Errorf("moderate keyword %q reported alongside a critical match", kw)
		}
	}
}

func TestDetectNoCrisis(t *testing.T) {
	detector := NewCrisisDetector()

	verdict := detector.Detect("I had a nice walk in the park this morning")
	if verdict.IsCrisis {
		t.Fatal("expected benign message not to flag")
	}
	if verdict.Severity != SeverityNone {
		t.Errorf("Severity = %q, want %q", verdict.Severity, SeverityNone)
	}
	if verdict.RecommendedAction != ActionContinue {
		t.Errorf("RecommendedAction = %q, want %q", verdict.RecommendedAction, ActionContinue)
	}
	if verdict.KeywordsDetected == nil || len(verdict.KeywordsDetected) != 0 {
		t.Errorf("KeywordsDetected = %v, want empty slice", verdict.KeywordsDetected)
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	detector := NewCrisisDetector()

	first := detector.Detect("I can't go on like this")
	for i := 0; i < 10; i++ {
		again := detector.Detect("I can't go on like this")
		if again.Severity != first.Severity || again.IsCrisis != first.IsCrisis {
			t.Fatalf("detection changed between identical calls: %+v vs %+v", first, again)
		}
	}
}

func TestCrisisResponse(t *testing.T) {
	detector := NewCrisisDetector()

	critical := detector.CrisisResponse(SeverityCritical)
	if critical == "" {
		t.Fatal("critical resource text is empty")
	}
	for _, want := range []string{"988", "741741", "911"} {
		if !strings.Contains(critical, want) {
			t.Errorf("critical resource text missing %q", want)
		}
	}

	moderate := detector.CrisisResponse(SeverityModerate)
	if moderate == "" {
		t.Fatal("moderate resource text is empty")
	}
	if !strings.Contains(moderate, "988") {
		t.Error("moderate resource text missing the 988 lifeline")
	}

	if got := detector.CrisisResponse(SeverityNone); got != "" {
		t.Errorf("CrisisResponse(none) = %q, want empty", got)
	}
}
