package protection

import "strings"

// searchEngineCrawlers are always allowed through the bot filter, matching
// the named exceptions for search-engine crawlers.
var searchEngineCrawlers = []string{
	"googlebot",
	"bingbot",
	"duckduckbot",
	"slurp", // Yahoo
	"yandexbot",
	"applebot",
}

// automatedClients are User-Agent fragments that identify non-browser
// automation. Anything matching here is denied unless explicitly allowed.
var automatedClients = []string{
	"curl/",
	"wget/",
	"python-requests",
	"go-http-client",
	"scrapy",
	"httpclient",
	"headlesschrome",
	"phantomjs",
	"postmanruntime",
	"bot",
	"spider",
	"crawler",
}

// botFilter classifies requests by User-Agent.
//
// Order of evaluation: search engine crawlers pass, configured allowed
// clients pass, known automation is denied, everything else passes. An empty
// User-Agent is treated as automation.
type botFilter struct {
	allowed []string
}

func newBotFilter(allowed []string) *botFilter {
	lowered := make([]string, 0, len(allowed))
	for _, a := range allowed {
		lowered = append(lowered, strings.ToLower(a))
	}
	return &botFilter{allowed: lowered}
}

// inspect returns ("", true) when the client may proceed, or the matched
// deny pattern and false otherwise.
func (b *botFilter) inspect(userAgent string) (string, bool) {
	ua := strings.ToLower(strings.TrimSpace(userAgent))

	if ua == "" {
		return "bot:empty-user-agent", false
	}

	for _, crawler := range searchEngineCrawlers {
		if strings.Contains(ua, crawler) {
			return "", true
		}
	}

	for _, allow := range b.allowed {
		if allow != "" && strings.Contains(ua, allow) {
			return "", true
		}
	}

	for _, deny := range automatedClients {
		if strings.Contains(ua, deny) {
			return "bot:" + deny, false
		}
	}

	return "", true
}
