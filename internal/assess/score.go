package assess

import "strings"

// scoreRule maps a verdict keyword to a fixed trust score. Rules are
// evaluated in order; the first substring match wins.
type scoreRule struct {
	keyword       string
	caseSensitive bool
	score         float64
}

var evergreenRules = []scoreRule{
	{keyword: "True", caseSensitive: true, score: 9.0},
	{keyword: "Potentially Misleading", caseSensitive: true, score: 5.0},
	{keyword: "False", caseSensitive: true, score: 1.0},
}

var realtimeRules = []scoreRule{
	{keyword: "true", score: 8.0},
	{keyword: "needs verification", score: 4.0},
	{keyword: "false", score: 1.0},
}

// TrustScoreEvergreen derives the trust score from an evergreen verdict.
// Verdicts matching no keyword score 0.0.
func TrustScoreEvergreen(assessment string) float64 {
	return applyRules(assessment, evergreenRules)
}

// TrustScoreRealtime derives the trust score from a real-time verdict using
// case-insensitive matching.
func TrustScoreRealtime(assessment string) float64 {
	return applyRules(assessment, realtimeRules)
}

func applyRules(assessment string, rules []scoreRule) float64 {
	lower := strings.ToLower(assessment)
	for _, rule := range rules {
		if rule.caseSensitive {
			if strings.Contains(assessment, rule.keyword) {
				return rule.score
			}
			continue
		}
		if strings.Contains(lower, rule.keyword) {
			return rule.score
		}
	}
	return 0.0
}
