package phone

import "strings"

// Plan describes one country's numbering scheme. Numbers that start with the
// calling code are truncated to a known length depending on whether the next
// digits look like a mobile or a landline prefix; everything else passes
// through as stripped digits.
type Plan struct {
	CallingCode    string `yaml:"calling_code"`
	MobilePrefix   string `yaml:"mobile_prefix"`
	MobileDigits   int    `yaml:"mobile_digits"`
	LandlinePrefix string `yaml:"landline_prefix"`
	LandlineDigits int    `yaml:"landline_digits"`
}

// DefaultPlan returns the UAE numbering plan: +971, mobile numbers start
// with 5 and carry 9 digits after the calling code, Dubai landlines start
// with 4 and carry 8.
func DefaultPlan() Plan {
	return Plan{
		CallingCode:    "971",
		MobilePrefix:   "5",
		MobileDigits:   9,
		LandlinePrefix: "4",
		LandlineDigits: 8,
	}
}

// minUsableLen is a deliberately loose validity floor, not E.164 validation.
const minUsableLen = 5

// Normalize canonicalizes a free-form phone string into dialable digits.
// Numbers without the plan's calling code pass through unchanged, which may
// produce an undialable link for foreign numbers; that is the documented
// behavior, not something to silently repair.
func Normalize(raw string, plan Plan) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if plan.CallingCode == "" || !strings.HasPrefix(digits, plan.CallingCode) {
		return digits
	}

	rest := digits[len(plan.CallingCode):]
	if plan.MobilePrefix != "" && strings.HasPrefix(rest, plan.MobilePrefix) {
		return plan.CallingCode + clip(rest, plan.MobileDigits)
	}
	if plan.LandlinePrefix != "" && strings.HasPrefix(rest, plan.LandlinePrefix) {
		return plan.CallingCode + clip(rest, plan.LandlineDigits)
	}
	return digits
}

// Usable reports whether a normalized number is long enough to dial.
func Usable(normalized string) bool {
	return len(normalized) > minUsableLen
}

func clip(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
