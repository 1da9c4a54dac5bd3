package assess

import (
	"fmt"

	"github.com/factlens/factlens/internal/model"
)

// Character budgets applied to concatenated scraped text before it is
// embedded in a prompt. Real-time verdicts get slightly more room because
// breaking-news pages carry less text each.
const (
	summaryContentBudget         = 3000
	evergreenVerdictContentBudget = 2000
	realtimeVerdictContentBudget  = 2500
)

func summaryPrompt(combined string) string {
	return fmt.Sprintf(`Based on the following content from trusted sources, provide a concise summary of the key information related to the topic.

Trusted Sources Content:
%s

Summary:`, truncate(combined, summaryContentBudget))
}

func educationPrompt(newsText string, domain model.DomainCategory) string {
	return fmt.Sprintf(`Given the original news topic: %q (categorized as %s misinformation), suggest 3-5 key areas or reputable resources for an individual to further educate themselves to avoid similar misinformation in the future. Focus on critical thinking, media literacy, and understanding the %s domain.

Suggestions:`, newsText, domain, domain)
}

func evergreenVerdictPrompt(newsText, combined string) string {
	return fmt.Sprintf(`Given the following original news text and content from trusted sources, analyze if the original news text contains misinformation related to evergreen topics.
Focus on factual accuracy and consistency with the trusted sources.

Original News Text: %s

Trusted Sources Content: %s

Based on the comparison, state clearly if the Original News Text is likely 'True', 'Potentially Misleading', or 'False'. Also, provide a brief explanation for your assessment.`, newsText, truncate(combined, evergreenVerdictContentBudget))
}

func realtimeVerdictPrompt(newsText, combined string) string {
	return fmt.Sprintf(`Given the following breaking news claim and content scraped from live news sources, assess whether the claim is consistent with current reporting.

Claim: %s

Live Sources Content: %s

State whether the claim appears 'true', 'needs verification', or 'false' based on the sources, then give your reasoning. Breaking stories change quickly; prefer 'needs verification' when the sources are thin or contradictory.`, newsText, truncate(combined, realtimeVerdictContentBudget))
}

func truncate(s string, budget int) string {
	if len(s) <= budget {
		return s
	}
	return s[:budget]
}
