package scanner

import (
	"regexp"
	"strings"
)

// fpvKeywords are product, brand and spec terms that indicate FPV
// relevance. Matching is substring-based over lower-cased text, so
// short entries cast a wide net on purpose.
var fpvKeywords = []string{
	// Core FPV terms
	"drone", "quad", "fpv", "goggles", "controller", "motor", "esc", "battery", "lipo",
	"transmitter", "receiver", "camera", "vtx", "antenna", "bundle", "setup", "charger",
	// Specific brands and models
	"crossfire", "taranis", "betaflight", "clracing", "speedix", "pyrodrone", "foxeer",
	"dji", "o4", "o4 pro", "smooth operater", "yeti", "gnb", "samsung",
	// Technical specifications
	"mah", "kv", "s", "xt30", "xt60", "4s", "6s", "3s", "inch", "2207", "1103",
	// Component types
	"pack", "packs", "module", "mount", "case", "board", "checker", "bag",
	// Additional FPV terms
	"radio", "elrs", "expresslrs", "pocket", "pudo", "included", "shipping",
}

// saleKeywords are phrases and symbols that suggest commercial intent.
var saleKeywords = []string{
	"for sale", "selling", "fs:", "$", "£", "€", "price", "sold", "dm for", "dm for more",
	"excluding shipping", "shipping on buyer", "based in", "pickup", "collection",
	"included", "pudo", "shipping", "delivery", "postage",
}

var (
	priceIndicatorRe = regexp.MustCompile(`(?i)\b(?:r\s*\d+|\$\s*\d+|\d+\s*(?:rand|zar|usd|gbp|eur))\b`)
	conditionRe      = regexp.MustCompile(`(?i)\b(?:brand new|new|mint condition|good condition)\b`)
)

// IsForSale decides whether message text describes an item for sale.
// Pure function of the text: deterministic, no state, independent of
// message order.
//
// Three rules, any of which accepts:
//  1. an FPV term together with any commercial signal
//  2. sale phrasing plus a price in a message long enough to carry detail
//  3. three or more FPV terms in a message over 50 characters
//
// Rule 3 is known to over-trigger on long unrelated text; it is kept
// as a deliberate recall-over-precision tradeoff.
func IsForSale(body string) bool {
	text := strings.ToLower(body)

	domainMatches := 0
	for _, keyword := range fpvKeywords {
		if strings.Contains(text, keyword) {
			domainMatches++
		}
	}
	hasFpvKeyword := domainMatches > 0

	hasSaleKeyword := false
	for _, keyword := range saleKeywords {
		if strings.Contains(text, keyword) {
			hasSaleKeyword = true
			break
		}
	}

	hasPriceIndicator := priceIndicatorRe.MatchString(body)
	hasConditionIndicator := conditionRe.MatchString(body)

	if hasFpvKeyword && (hasSaleKeyword || hasPriceIndicator || hasConditionIndicator) {
		return true
	}
	if hasSaleKeyword && hasPriceIndicator && len(text) > 20 {
		return true
	}
	if hasFpvKeyword && len(text) > 50 && domainMatches >= 3 {
		return true
	}
	return false
}
