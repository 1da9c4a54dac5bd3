// Package sources holds the static trusted-hostname catalog used to filter
// search results before scraping. The catalog is read-only after process
// start; lookups never fail — unknown domains fall back to the General list.
package sources

import (
	"strings"

	"github.com/factlens/factlens/internal/model"
)

var generalTrusted = []string{
	"wikipedia.org",
	"britannica.com",
	"nationalgeographic.com",
	"apnews.com",
	"reuters.com",
	"bbc.com/news",
	"nytimes.com",
	"wsj.com",
	"factcheck.org",
	"snopes.com",
	"politifact.com",
}

var healthTrusted = []string{
	// Indian government and health organizations
	"mohfw.gov.in",
	"icmr.gov.in",
	"aiims.edu",
	"nhp.gov.in",
	"phfi.org",
	"nihfw.org",
	"indianpediatrics.net",
	"fssai.gov.in",
	"mciindia.org",
	"ncdc.gov.in",
	"tmc.gov.in",
	"pgimer.edu.in",
	"sctimst.ac.in",
	// International health organizations and reputable outlets
	"cdc.gov",
	"mayoclinic.org",
	"medlineplus.gov",
	"fda.gov",
	"health.gov",
	"webmd.com",
	"healthline.com",
	"nhs.uk",
	"health.harvard.edu",
	"heart.org",
	"hopkinsmedicine.org",
	"medicalnewstoday.com",
	"nia.nih.gov",
	"thelancet.com",
	"wikipedia.org",
	"everydayhealth.com",
	"clevelandclinic.org",
	"onlymyhealth.com",
	"health.economictimes.indiatimes.com",
	"maxhealthcare.in",
	"netmeds.com",
	"1mg.com",
	"cabidigitallibrary.org",
}

var financeTrusted = []string{
	"rbi.org.in",
	"sebi.gov.in",
	"bseindia.com",
	"nseindia.com",
	"moneycontrol.com",
	"economictimes.indiatimes.com",
	"business-standard.com",
	"financialexpress.com",
	"livemint.com",
	"businesstoday.in",
	"crisil.com",
	"icra.in",
	"tradingeconomics.com",
	"investindia.gov.in",
	"ibef.org",
	"pib.gov.in",
	"taxmann.com",
	"caindia.org",
	"policybazaar.com",
	"india.gov.in",
	"investopedia.com",
	"bloomberg.com",
	"reuters.com",
	"wsj.com",
	"ft.com",
	"cnbc.com",
	"fidelity.com",
	"zacks.com",
	"fool.com",
	"wikipedia.org",
}

// Real-time lists favor wire services and outlets with live coverage.
var generalRealtime = []string{
	"reuters.com",
	"apnews.com",
	"bbc.com",
	"aljazeera.com",
	"theguardian.com",
	"cnn.com",
	"nytimes.com",
	"ndtv.com",
	"indiatoday.in",
	"thehindu.com",
	"indianexpress.com",
	"timesofindia.indiatimes.com",
}

var healthRealtime = []string{
	"who.int",
	"cdc.gov",
	"mohfw.gov.in",
	"reuters.com",
	"apnews.com",
	"bbc.com",
	"statnews.com",
	"thelancet.com",
	"health.economictimes.indiatimes.com",
}

var financeRealtime = []string{
	"reuters.com",
	"bloomberg.com",
	"cnbc.com",
	"ft.com",
	"wsj.com",
	"moneycontrol.com",
	"economictimes.indiatimes.com",
	"livemint.com",
	"rbi.org.in",
	"sebi.gov.in",
}

var evergreenByDomain = map[model.DomainCategory][]string{
	model.DomainHealth:  healthTrusted,
	model.DomainFinance: financeTrusted,
	model.DomainGeneral: generalTrusted,
	model.DomainOther:   generalTrusted,
}

var realtimeByDomain = map[model.DomainCategory][]string{
	model.DomainHealth:  healthRealtime,
	model.DomainFinance: financeRealtime,
	model.DomainGeneral: generalRealtime,
	model.DomainOther:   generalRealtime,
}

// Trusted returns the ordered trusted-hostname list for the given domain and
// recency category. Unknown domains fall back to the General list; unknown
// recency falls back to the evergreen axis.
func Trusted(domain model.DomainCategory, recency model.RecencyCategory) []string {
	table := evergreenByDomain
	if recency == model.RecencyRealtime {
		table = realtimeByDomain
	}
	if list, ok := table[domain]; ok {
		return list
	}
	return table[model.DomainGeneral]
}

// MatchesTrusted reports whether the URL matches any hostname in the list.
// A link matches when the trusted hostname is a substring of it.
func MatchesTrusted(url string, trusted []string) bool {
	for _, host := range trusted {
		if host != "" && strings.Contains(url, host) {
			return true
		}
	}
	return false
}
