package nlp

import "regexp"

// Pattern catalogs are immutable package-level data compiled once at init.
// Entity matching for destination/date runs against the original-case text
// because those patterns lean on capitalization cues; the rest are
// case-insensitive.

type captureMode int

const (
	// captureSingle yields one entity from the first capture group, falling
	// back to the whole match when the group did not participate.
	captureSingle captureMode = iota
	// capturePaired yields two sibling entities from two capture groups,
	// for phrasing like "from Tokyo to Osaka" or "from June 3 to June 10".
	capturePaired
)

type entityPattern struct {
	re         *regexp.Regexp
	mode       captureMode
	confidence float64
}

var monthNames = `(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)`

var capitalizedPlace = `([A-Z][a-zA-Z]+(?:[ '-][A-Z][a-zA-Z]+)*)`

var entityTypeOrder = []EntityType{
	EntityDestination,
	EntityDate,
	EntityBudget,
	EntityTravelers,
	EntityPreference,
}

var entityPatterns = map[EntityType][]entityPattern{
	EntityDestination: {
		{re: regexp.MustCompile(`from ` + capitalizedPlace + ` to ` + capitalizedPlace), mode: capturePaired, confidence: 0.95},
		{re: regexp.MustCompile(`(?:fly(?:ing)?|go(?:ing)?|travel(?:ing|ling)?|trip|flight|ticket|head(?:ing)?) to ` + capitalizedPlace), mode: captureSingle, confidence: 0.9},
		{re: regexp.MustCompile(`(?:visit(?:ing)?|explore|see) ` + capitalizedPlace), mode: captureSingle, confidence: 0.85},
		{re: regexp.MustCompile(`(?:stay(?:ing)?|hotel|accommodation) in ` + capitalizedPlace), mode: captureSingle, confidence: 0.85},
		{re: regexp.MustCompile(`(?:vacation|holiday|honeymoon|weekend) (?:in|to) ` + capitalizedPlace), mode: captureSingle, confidence: 0.8},
		{re: regexp.MustCompile(`\bto ` + capitalizedPlace), mode: captureSingle, confidence: 0.6},
	},
	EntityDate: {
		{re: regexp.MustCompile(`from (` + monthNames + `\.? \d{1,2}(?:st|nd|rd|th)?) (?:to|until|through) (` + monthNames + `\.? \d{1,2}(?:st|nd|rd|th)?)`), mode: capturePaired, confidence: 0.95},
		{re: regexp.MustCompile(`(` + monthNames + `\.? \d{1,2}(?:st|nd|rd|th)?(?:,? \d{4})?)`), mode: captureSingle, confidence: 0.9},
		{re: regexp.MustCompile(`(\d{1,2}(?:st|nd|rd|th)? (?:of )?` + monthNames + `(?:,? \d{4})?)`), mode: captureSingle, confidence: 0.9},
		{re: regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)`), mode: captureSingle, confidence: 0.8},
		{re: regexp.MustCompile(`\b(next (?:week(?:end)?|month|year|summer|winter))\b`), mode: captureSingle, confidence: 0.7},
		{re: regexp.MustCompile(`\b(this (?:week(?:end)?|month|summer|winter))\b`), mode: captureSingle, confidence: 0.7},
		{re: regexp.MustCompile(`\b(tomorrow|tonight|today)\b`), mode: captureSingle, confidence: 0.7},
		{re: regexp.MustCompile(`\bin (` + monthNames + `)\b`), mode: captureSingle, confidence: 0.65},
	},
	EntityBudget: {
		{re: regexp.MustCompile(`(?i)(?:budget|spend(?:ing)?|max(?:imum)?|under|below|less than|up to|around|about) (?:of |is |:)?\$?([\d,]+(?:\.\d+)?)`), mode: captureSingle, confidence: 0.9},
		{re: regexp.MustCompile(`(?i)\$([\d,]+(?:\.\d+)?)`), mode: captureSingle, confidence: 0.85},
		{re: regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?) (?:dollars|usd|bucks)`), mode: captureSingle, confidence: 0.85},
	},
	EntityTravelers: {
		{re: regexp.MustCompile(`(?i)(\d+) (?:people|persons?|travell?ers?|adults?|passengers?|guests?|of us)`), mode: captureSingle, confidence: 0.9},
		{re: regexp.MustCompile(`(?i)(?:party|group) of (\d+)`), mode: captureSingle, confidence: 0.9},
		{re: regexp.MustCompile(`(?i)for (\d+)\b`), mode: captureSingle, confidence: 0.7},
		{re: regexp.MustCompile(`(?i)\b(solo|alone|myself|couple|family)\b`), mode: captureSingle, confidence: 0.75},
	},
	EntityPreference: {
		{re: regexp.MustCompile(`(?i)\b(luxury|budget-friendly|cheap|romantic|family-friendly|adventurous|relaxing|all-inclusive|boutique|beachfront|pet-friendly|quiet|central)\b`), mode: captureSingle, confidence: 0.8},
		{re: regexp.MustCompile(`(?i)\b(non-?stop|direct|red-?eye|window seat|aisle seat|business class|first class|economy|premium economy)\b`), mode: captureSingle, confidence: 0.8},
		{re: regexp.MustCompile(`(?i)(?:prefer(?:ably)?|would like|looking for) (?:a |an |something )?([a-z][a-z-]+(?: [a-z-]+)?)`), mode: captureSingle, confidence: 0.6},
	},
}

// travelerKeywords maps non-numeric traveler phrasing to a head count.
var travelerKeywords = map[string]int{
	"solo":   1,
	"alone":  1,
	"myself": 1,
	"couple": 2,
	"family": 4,
}

// Intents are scanned most specific first. Later candidates only displace
// the current winner on strictly greater confidence, so ties resolve to the
// earlier, higher-priority intent.
var intentPriority = []IntentType{
	IntentAddToPlan,
	IntentBookItem,
	IntentModifyPlan,
	IntentViewPlan,
	IntentCheckBudget,
	IntentGetRecommendations,
	IntentSearchFlight,
	IntentSearchHotel,
}

var intentPatterns = map[IntentType][]*regexp.Regexp{
	IntentAddToPlan: {
		regexp.MustCompile(`\badd\b.*\b(?:plan|itinerary|trip)\b`),
		regexp.MustCompile(`\bsave (?:this|that|it|the)\b`),
		regexp.MustCompile(`\bput\b.*\b(?:in|on) (?:my|the) (?:plan|itinerary)\b`),
		regexp.MustCompile(`\bkeep (?:this|that) (?:one|option)\b`),
	},
	IntentBookItem: {
		regexp.MustCompile(`\bbook\b`),
		regexp.MustCompile(`\breserve\b`),
		regexp.MustCompile(`\bconfirm (?:the |my )?(?:booking|reservation)\b`),
		regexp.MustCompile(`\b(?:purchase|buy) (?:the |this |that )?(?:ticket|flight|room|one)\b`),
	},
	IntentModifyPlan: {
		regexp.MustCompile(`\b(?:change|modify|update|edit|remove|delete|drop)\b.*\b(?:plan|itinerary|booking|trip)\b`),
		regexp.MustCompile(`\breschedule\b`),
		regexp.MustCompile(`\bswap\b.*\b(?:for|with)\b`),
	},
	IntentViewPlan: {
		regexp.MustCompile(`\b(?:show|view|see|display|open)\b.*\b(?:plan|itinerary)\b`),
		regexp.MustCompile(`\bmy (?:plan|itinerary)\b`),
		regexp.MustCompile(`\bwhat(?:'s| is) (?:in|on) (?:my|the) (?:plan|itinerary)\b`),
	},
	IntentCheckBudget: {
		regexp.MustCompile(`\b(?:check|review|track)\b.*\bbudget\b`),
		regexp.MustCompile(`\bhow much\b.*\b(?:spent|left|cost|costing)\b`),
		regexp.MustCompile(`\b(?:total|remaining) (?:cost|budget|spend)\b`),
		regexp.MustCompile(`\bafford\b`),
	},
	IntentGetRecommendations: {
		regexp.MustCompile(`\brecommend(?:ation)?s?\b`),
		regexp.MustCompile(`\bsuggest(?:ion)?s?\b`),
		regexp.MustCompile(`\bwhere should (?:i|we)\b`),
		regexp.MustCompile(`\bwhat should (?:i|we)\b`),
		regexp.MustCompile(`\bany ideas\b`),
	},
	IntentSearchFlight: {
		regexp.MustCompile(`\b(?:flights?|fly|flying|airfare|planes?|airlines?)\b`),
		regexp.MustCompile(`\bround.?trip\b`),
		regexp.MustCompile(`\bone.?way\b`),
	},
	IntentSearchHotel: {
		regexp.MustCompile(`\b(?:hotels?|hostels?|resorts?|accommodation|lodging|airbnb)\b`),
		regexp.MustCompile(`\b(?:place|somewhere) to stay\b`),
		regexp.MustCompile(`\broom for\b`),
	},
}

var genericTravelPattern = regexp.MustCompile(`\b(?:travel|vacation|holiday|visit)\b`)

// Refinement trigger vocabulary. Shared between the query refiner and the
// dialogue layer's REFINING_SEARCH heuristic so both agree on what counts
// as search feedback.
var (
	cheaperPattern       = regexp.MustCompile(`\b(?:cheaper|less expensive)\b`)
	pricierPattern       = regexp.MustCompile(`\b(?:more expensive|luxury)\b`)
	earlierPattern       = regexp.MustCompile(`\bearlier\b`)
	laterPattern         = regexp.MustCompile(`\blater\b`)
	shorterPattern       = regexp.MustCompile(`\b(?:shorter|direct)\b`)
	nearPattern          = regexp.MustCompile(`(?:closer to|near(?:by)?) (?:the )?([a-z][a-z ]*?)(?:[,.!?]|$)`)
	betterRatedPattern   = regexp.MustCompile(`\b(?:better rated|higher rating)\b`)
	brandPattern         = regexp.MustCompile(`\b(?:only|prefer) ([a-z][\w-]*)`)
	somethingCheaper     = regexp.MustCompile(`\bsomething cheaper\b`)
	somethingPricier     = regexp.MustCompile(`\bsomething more expensive\b`)
	timeRangePattern     = regexp.MustCompile(`\b(morning|evening|night)\b`)
	locationPrefPattern  = regexp.MustCompile(`\b(downtown|airport|beach)\b`)
	excludePattern       = regexp.MustCompile(`\b(?:except|but not) (.+?)(?:[,.!?]|$)`)
	comparativePattern   = regexp.MustCompile(`\blike the (.+?) but (.+)$`)
	sortCheapestPattern  = regexp.MustCompile(`\bcheapest first\b`)
	sortBestRatedPattern = regexp.MustCompile(`\bbest rated\b`)
	sortPopularPattern   = regexp.MustCompile(`\bmost popular\b`)
)

// amenityGroups maps a canonical amenity name to the keywords that request
// it. Order is fixed so repeated refinements append deterministically.
var amenityGroupOrder = []string{"wifi", "parking", "pool", "gym", "breakfast", "pet_friendly"}

var amenityGroups = map[string][]string{
	"wifi":         {"wifi", "wi-fi", "internet"},
	"parking":      {"parking", "park my car"},
	"pool":         {"pool", "swimming"},
	"gym":          {"gym", "fitness"},
	"breakfast":    {"breakfast"},
	"pet_friendly": {"pet friendly", "pet-friendly", "pets allowed", "dog friendly"},
}

// refinementSignals is the coarse keyword layer that flags free text such as
// "something cheaper" as search feedback even though no intent pattern
// matches it.
var refinementSignals = []*regexp.Regexp{
	cheaperPattern,
	pricierPattern,
	earlierPattern,
	laterPattern,
	shorterPattern,
	regexp.MustCompile(`\b(?:closer to|near)\b`),
	betterRatedPattern,
	somethingCheaper,
	somethingPricier,
	excludePattern,
	comparativePattern,
	sortCheapestPattern,
	sortBestRatedPattern,
	sortPopularPattern,
}
