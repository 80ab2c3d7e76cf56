// Package router implements the two-stage intent and slot-filling router.
// Stage 1 is deterministic rule extraction; Stage 2 is an LLM fallback that
// only runs under strict gating. This file holds the tuned word lists and
// thresholds. They are heuristics carried over from production traffic, kept
// in one place so they can be adjusted without touching the matching code.
package router

import (
	"regexp"

	"github.com/studygate/partner-bot-go/internal/slots"
)

// Similarity thresholds. These are tuning constants, not semantic cutoffs.
const (
	// DegreeMatchThreshold is the minimum similarity ratio for the fuzzy
	// degree matcher to accept a candidate.
	DegreeMatchThreshold = 0.75

	// Stage2ConfidenceThreshold gates the LLM fallback: Stage 1 results at or
	// above this confidence never trigger Stage 2.
	Stage2ConfidenceThreshold = 0.75

	// MergedConfidenceFloor is the minimum confidence after a merge that
	// consulted Stage 2.
	MergedConfidenceFloor = 0.5

	// ShortMessageTokens is the utterance length (in whitespace tokens) at or
	// below which the LLM fallback is banned.
	ShortMessageTokens = 2

	// historyWindow bounds how many prior turns are forwarded to Stage 2.
	historyWindow = 16
)

// synonymTable folds common variants into canonical wording. Applied after
// lowercasing, on word boundaries.
var synonymTable = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\buni\b`), "university"},
	{regexp.MustCompile(`\bsept\b`), "september"},
	{regexp.MustCompile(`\bfall\b`), "september"},
	{regexp.MustCompile(`\bautumn\b`), "september"},
	{regexp.MustCompile(`\bspring\b`), "march"},
	{regexp.MustCompile(`\basap\b`), "earliest"},
	{regexp.MustCompile(`\bsoonest\b`), "earliest"},
}

// degreeSynonyms maps each canonical degree level to the variants the fuzzy
// matcher scores against.
var degreeSynonyms = map[string][]string{
	slots.DegreeBachelor: {"bachelor", "bsc", "bs", "ba", "beng", "b.eng", "undergrad", "undergraduate"},
	slots.DegreeMaster:   {"master", "masters", "msc", "ms", "ma", "mba", "m.sc", "m.s", "m.a", "postgrad", "postgraduate", "graduate"},
	slots.DegreePhD:      {"phd", "ph.d", "doctorate", "doctoral", "dphil"},
	slots.DegreeLanguage: {"language", "nondegree", "non-degree", "foundation"},
	slots.DegreeDiploma:  {"diploma", "associate", "assoc"},
}

// degreeLiterals are exact-form regexes tried before any similarity scoring.
var degreeLiterals = []struct {
	pattern *regexp.Regexp
	level   string
}{
	{regexp.MustCompile(`^(bachelor|bacheler|bsc|bs|ba|beng|undergrad|undergraduate)$`), slots.DegreeBachelor},
	{regexp.MustCompile(`^(master|masters|msc|ms|ma|mba|postgrad|postgraduate|graduate)$`), slots.DegreeMaster},
	{regexp.MustCompile(`^(phd|ph\.?d|doctorate|doctoral|dphil)$`), slots.DegreePhD},
	{regexp.MustCompile(`^(language|non.?degree|foundation)$`), slots.DegreeLanguage},
	{regexp.MustCompile(`^(diploma|associate|assoc)$`), slots.DegreeDiploma},
}

// degreeWords must never populate the major slot, neither verbatim nor as a
// close fuzzy match.
var degreeWords = map[string]bool{
	"master": true, "masters": true, "bachelor": true, "bachelors": true,
	"degree": true, "phd": true, "doctorate": true, "language": true,
	"diploma": true, "undergrad": true, "graduate": true, "postgrad": true,
	"postgraduate": true,
}

// majorStopWords are filtered out before the free-text remainder is treated
// as a major query.
var majorStopWords = map[string]bool{
	"university": true, "universities": true, "database": true, "list": true,
	"program": true, "programs": true, "course": true, "courses": true,
	"major": true, "majors": true, "show": true, "all": true,
	"available": true, "what": true, "which": true, "want": true,
	"need": true, "looking": true, "interested": true, "searching": true,
	"please": true, "tell": true, "give": true, "find": true,
	"instead": true, "actually": true, "change": true, "switch": true,
	"how": true, "much": true, "many": true, "month": true, "months": true,
	"week": true, "weeks": true, "year": true, "years": true,
	"semester": true, "semesters": true,
	"the": true, "and": true, "for": true, "with": true, "about": true,
	"from": true, "are": true, "can": true, "could": true, "would": true,
	"should": true, "will": true, "they": true, "there": true, "this": true,
	"that": true, "these": true, "those": true, "have": true, "has": true,
	"does": true, "not": true, "any": true, "some": true, "get": true,
	"got": true, "know": true, "you": true, "your": true, "hello": true,
	"thanks": true, "thank": true, "okay": true,
}

// majorCleanup strips residual slot words from a major candidate.
var majorCleanup = regexp.MustCompile(`\b(bachelor|bachelors|master|masters|phd|language|diploma|march|september|english|chinese|fee|fees|tuition|cost|price|degree)\b`)

// changeIndicators signal an explicit mid-conversation intent change.
var changeIndicators = regexp.MustCompile(`\b(instead|actually|change|now|switch|no,|no\s+)\b`)

// Gazetteer used by the location slot extractor. Catalog coverage is
// mainland-China study destinations, matching the partner network.
var (
	knownCities = map[string]bool{
		"guangzhou": true, "beijing": true, "shanghai": true, "shenzhen": true,
		"hangzhou": true, "nanjing": true, "chengdu": true, "xian": true,
		"wuhan": true,
	}
	provincePattern = regexp.MustCompile(`\b(guangdong|jiangsu|zhejiang|sichuan|shaanxi|hubei|shandong|hunan)\b`)
	cityPattern     = regexp.MustCompile(`\bin\s+([a-z]+(?:[\s-][a-z]+)*)\b`)
)

// Intent detection patterns, evaluated in ruleTable order.
var (
	paginationPattern  = regexp.MustCompile(`\b(next|more|show more|next page|page \d+|continue|prev|previous|back|page 1|first page)\b`)
	pageNextPattern    = regexp.MustCompile(`\b(next|more|show more|next page|continue)\b`)
	pagePrevPattern    = regexp.MustCompile(`\b(prev|previous|back)\b`)
	pageFirstPattern   = regexp.MustCompile(`\b(page 1|first page)\b`)
	universityPattern  = regexp.MustCompile(`\b(university|universities|partner universit(y|ies)|uni list|show all universit(y|ies)|list universit(y|ies))\b`)
	programListPattern = regexp.MustCompile(`\b(list|show|available|what programs?|which programs?|programs? available|majors? available|courses? available)\b`)
	programSeekPattern = regexp.MustCompile(`\b(want|need|looking for|interested in|searching for)\b.*\b(course|courses|program|programs|major|majors)\b`)
	requirementPattern = regexp.MustCompile(`\b(requirements?|eligibility|admission requirements?|apply|documents? needed|docs?|bank|hsk|ielts|csca|age|inside china|country|accommodation|deadline)\b`)
	bareReqPattern     = regexp.MustCompile(`\b(admission requirements?|requirements?|eligibility)\b`)
	reqSpecificPattern = regexp.MustCompile(`\b(bank|hsk|ielts|csca|age|deadline|accommodation|country|document|doc)\b`)
	scholarshipPattern = regexp.MustCompile(`\b(scholarship|waiver|type-?a|type-?b|type-?c|type-?d|partial|stipend|csc|university scholarship)\b`)
	comparisonPattern  = regexp.MustCompile(`\b(cheapest|lowest|compare|comparison|compare \d+)\b`)
	feesPattern        = regexp.MustCompile(`\b(fee|fees|tuition|cost|price|how much|budget|per year|per month|application fee|calculate fees?)\b`)
)

// Requirement focus keyword patterns.
var (
	reqDocsPattern    = regexp.MustCompile(`\b(doc|document|paper|material)\b`)
	reqExamsPattern   = regexp.MustCompile(`\b(hsk|ielts|toefl|csca|exam|test|english test)\b`)
	reqBankPattern    = regexp.MustCompile(`\b(bank|statement|guarantee)\b`)
	reqAgePattern     = regexp.MustCompile(`\b(age|old|young)\b`)
	reqInsidePattern  = regexp.MustCompile(`\b(inside china|in china|china applicant)\b`)
	reqDeadline       = regexp.MustCompile(`\b(deadline|when|due|last date)\b`)
	reqAccommodation  = regexp.MustCompile(`\b(accommodation|dorm|apartment|housing)\b`)
	reqCountryPattern = regexp.MustCompile(`\b(country|nationality|allowed|eligible)\b`)
)

// Scholarship provider patterns.
var (
	cscPattern        = regexp.MustCompile(`\bcsc\b`)
	uniScholarPattern = regexp.MustCompile(`\buniversity scholarship\b`)
	freeTuition       = regexp.MustCompile(`\b(free tuition|tuition.?free|zero tuition|no tuition)\b`)
)

// Slot extraction patterns.
var (
	degreeBachelorSlot = regexp.MustCompile(`\b(bachelor|undergrad|undergraduate|b\.?sc|bsc|b\.?s|bs|b\.?a|ba|beng|b\.?eng)\b`)
	degreeMasterSlot   = regexp.MustCompile(`\b(master|masters|postgrad|post-graduate|graduate|msc|m\.?sc|ms|m\.?s|ma|m\.?a|mba)\b`)
	degreePhDSlot      = regexp.MustCompile(`\b(phd|ph\.?d|doctorate|doctoral|dphil)\b`)
	degreeLanguageSlot = regexp.MustCompile(`\b(language\s+program|language\s+course|non-?degree|foundation|foundation\s+program)\b`)
	degreeDiplomaSlot  = regexp.MustCompile(`\b(diploma|associate|assoc)\b`)

	englishTaught = regexp.MustCompile(`\b(english|english-?taught|english\s+program)\b`)
	chineseTaught = regexp.MustCompile(`\b(chinese|chinese-?taught|chinese\s+program|mandarin)\b`)

	marchTerm     = regexp.MustCompile(`\b(mar(ch)?|spring)\b`)
	septemberTerm = regexp.MustCompile(`\b(sep(t|tember)?|fall|autumn)\b`)
	intakeYear    = regexp.MustCompile(`\b(20[2-9]\d)\b`)

	budgetPattern   = regexp.MustCompile(`\b(budget|max|maximum|under|below|less than|up to)\s*\$?(\d+(?:\.\d+)?)\s*(?:usd|rmb|yuan|cny)?\b`)
	earliestPattern = regexp.MustCompile(`\b(earliest|as soon as possible)\b`)

	universityNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:at|in|from)\s+([A-Z][a-zA-Z\s&]+(?:University|College|Institute|Medical|Normal))`),
		regexp.MustCompile(`\b([A-Z][a-zA-Z\s&]+(?:University|College|Institute|Medical|Normal))\b`),
	}
)

// Duration parsing patterns.
var (
	durationExact  = regexp.MustCompile(`\b(exactly|exact|precisely)\b`)
	durationApprox = regexp.MustCompile(`\b(about|approx|approximately|around|roughly)\b`)
	durationMin    = regexp.MustCompile(`\b(at least|minimum|min|more than|over|above)\b`)
	durationMax    = regexp.MustCompile(`\b(max|maximum|under|below|less than|up to)\b`)

	durationUnits = []struct {
		pattern *regexp.Regexp
		toYears float64
	}{
		{regexp.MustCompile(`(\d+\.?\d*)\s*months?\b`), 1.0 / 12.0},
		{regexp.MustCompile(`(\d+\.?\d*)\s*weeks?\b`), 1.0 / 52.0},
		{regexp.MustCompile(`(\d+\.?\d*)\s*years?\b`), 1.0},
		{regexp.MustCompile(`(\d+\.?\d*)\s*semesters?\b`), 0.5},
	}
	bareNumber = regexp.MustCompile(`(\d+\.?\d*)`)
)

// Clarification question patterns: if the last assistant turn matches one of
// these, the reply is expected to fill the associated slot.
var clarificationQuestions = []struct {
	pattern *regexp.Regexp
	slot    string
}{
	{regexp.MustCompile(`which level|which degree|degree level`), slots.SlotDegreeLevel},
	{regexp.MustCompile(`which intake|which term|intake`), slots.SlotIntakeTerm},
	{regexp.MustCompile(`which university|which program|university|program`), slots.SlotTarget},
	{regexp.MustCompile(`which subject|which major|subject|major`), slots.SlotMajorQuery},
}
