package services

import "strings"

// Crisis severity levels and the actions they demand.
const (
	SeverityNone     = "none"
	SeverityModerate = "moderate"
	SeverityCritical = "critical"

	ActionContinue  = "continue_conversation"
	ActionResources = "provide_resources"
	ActionIntervene = "immediate_intervention"
)

// criticalKeywords are scanned first and exhaustively: longer, more specific
// phrases must not be shadowed by shorter generic ones, and the full match
// list is kept for the audit record.
var criticalKeywords = []string{
	// Suicide-related (most specific first)
	"kill myself",
	"end my life",
	"want to die",
	"don't want to live",
	"not want to live",
	"no reason to live",
	"better off dead",
	"suicide",
	"suicidal",
	"can't go on",
	"end it all",
	"not worth living",
	"goodbye forever",

	// Self-harm
	"cut myself",
	"hurt myself",
	"self harm",
	"self-harm",
	"harm myself",

	// Immediate danger
	"going to hurt",
	"plan to die",
}

// moderateKeywords are only consulted when no critical keyword matched.
var moderateKeywords = []string{
	// Depression indicators
	"hopeless",
	"worthless",
	"can't take it",
	"give up",
	"no point",
	"nothing matters",
	"don't care anymore",

	// Despair
	"can't do this",
	"too much",
	"overwhelmed",
	"breaking point",
}

// CrisisVerdict classifies one message.
//
// Invariants: critical ⇒ immediate_intervention, moderate ⇒
// provide_resources, none ⇒ not a crisis, empty keyword list and
// continue_conversation.
type CrisisVerdict struct {
	IsCrisis          bool     `json:"is_crisis"`
	Severity          string   `json:"severity"`
	KeywordsDetected  []string `json:"keywords_detected"`
	RecommendedAction string   `json:"recommended_action"`
}

// CrisisDetector flags crisis indicators via case-insensitive substring
// matching against the static keyword lists. Pure: no state, no side
// effects; the caller owns audit logging.
type CrisisDetector struct{}

func NewCrisisDetector() *CrisisDetector {
	return &CrisisDetector{}
}

func (d *CrisisDetector) Detect(message string) CrisisVerdict {
	lower := strings.ToLower(strings.TrimSpace(message))

	var detected []string
	for _, keyword := range criticalKeywords {
		if strings.Contains(lower, keyword) {
			detected = append(detected, keyword)
		}
	}

	if len(detected) > 0 {
		return CrisisVerdict{
			IsCrisis:          true,
			Severity:          SeverityCritical,
			KeywordsDetected:  detected,
			RecommendedAction: ActionIntervene,
		}
	}

	for _, keyword := range moderateKeywords {
		if strings.Contains(lower, keyword) {
			detected = append(detected, keyword)
		}
	}

	if len(detected) > 0 {
		return CrisisVerdict{
			IsCrisis:          true,
			Severity:          SeverityModerate,
			KeywordsDetected:  detected,
			RecommendedAction: ActionResources,
		}
	}

	return CrisisVerdict{
		IsCrisis:          false,
		Severity:          SeverityNone,
		KeywordsDetected:  []string{},
		RecommendedAction: ActionContinue,
	}
}

// CrisisResponse returns the pre-authored resource text for a severity.
// The contact channels (988 lifeline, Crisis Text Line, 911, therapist
// directory) are fixed safety content and must not be reworded casually.
func (d *CrisisDetector) CrisisResponse(severity string) string {
	switch severity {
	case SeverityCritical:
		return criticalResourceText
	case SeverityModerate:
		return moderateResourceText
	default:
		return ""
	}
}

const criticalResourceText = `URGENT: I'm really concerned about what you're sharing. Please reach out for immediate help:

**Call or text 988** - Suicide & Crisis Lifeline (24/7, free, confidential)
**Text HOME to 741741** - Crisis Text Line (24/7)
**Call 911** - If you're in immediate danger

You don't have to go through this alone. These are trained crisis counselors who can help right now. Will you reach out to one of them?`

const moderateResourceText = `I hear that you're going through a really difficult time. While I'm here to listen, what you're experiencing sounds like something that would really benefit from professional support.

**Resources that can help:**
- 988 Suicide & Crisis Lifeline: Call or text 988
- Crisis Text Line: Text HOME to 741741
- Find a therapist: https://www.psychologytoday.com/us/therapists

Would you like to talk about what's making things feel so overwhelming right now?`
