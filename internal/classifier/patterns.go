package classifier

import "regexp"

// HardSkipThreadKeywords mark meta/promotional thread formats that almost
// never contain first-person pain narratives. Matching any of them excludes
// the whole thread, both at discovery time and per comment.
var HardSkipThreadKeywords = []string{
	"promote your business",
	"weekly thread",
	"daily thread",
	"megathread",
	"open thread",
	"showcase",
	"introduce yourself",
	"ama",
	"ask me anything",
}

// moderatorNoticePatterns catch boilerplate posted by human moderators.
var moderatorNoticePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bplease report\b`),
	regexp.MustCompile(`\bthis post will be removed\b`),
	regexp.MustCompile(`\bif it looks like\b.{0,40}\bremoved\b`),
	regexp.MustCompile(`\bmod(erator)? team\b`),
	regexp.MustCompile(`\bthis thread\b.{0,30}\bspammers?\b`),
}

// servicePitchPatterns catch consultants and vendors fishing for clients.
var servicePitchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bopen to a conversation\b`),
	regexp.MustCompile(`\b(i|we)\s+(help|support|coach|consult)\b`),
	regexp.MustCompile(`\bif you decide\b.{0,50}\b(i|we)\s+(step in|can help)\b`),
	regexp.MustCompile(`\bvisit\s+\S+\.\S+`),
	regexp.MustCompile(`\bdm me\b`),
	regexp.MustCompile(`\bcontact me\b`),
}

// painTerms is the cheap pain lexicon used by the pre-rank scorer.
var painTerms = []string{
	"frustrated", "frustrating", "overwhelmed", "stressed", "stuck", "struggling",
	"can't", "cannot", "failed", "failing", "problem", "issue", "worried", "confused",
	"burned out", "burnout", "drowning", "killing us", "cash crunch",
}

// impactPatterns detect concrete business impact (pre-rank variant).
var impactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(losing|lost|no|not enough)\s+(customers|clients|sales|revenue|money)`),
	regexp.MustCompile(`cash flow`),
	regexp.MustCompile(`can't (afford|hire|scale|pay|keep up)`),
	regexp.MustCompile(`(payroll|rent|overhead|expenses|costs)\s+(is|are)\s+(too high|killing|out of control|eating)`),
	regexp.MustCompile(`(employees|staff)\s+(quit|left|leaving|unreliable)`),
	regexp.MustCompile(`\bnet\s*(30|45|60|90)\b`),
	regexp.MustCompile(`\bout of pocket\b`),
	regexp.MustCompile(`\bfront(ing)?\s+(cash|costs|materials|labor)\b`),
	regexp.MustCompile(`\b(accounts?\s+receivable|ar)\b`),
	regexp.MustCompile(`\bline of credit\b`),
}

// strictImpactPatterns is the strict classifier's wider impact set.
var strictImpactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`cash flow`),
	regexp.MustCompile(`(losing|lost|no|not enough)\s+(customers|clients|sales|revenue|money)`),
	regexp.MustCompile(`can't (afford|hire|scale|pay|keep up)`),
	regexp.MustCompile(`(payroll|rent|overhead|expenses|costs)\s+(is|are)\s+(killing|too high|eating|out of control)`),
	regexp.MustCompile(`(employees|staff)\s+(quit|left|leaving|unreliable)`),
	regexp.MustCompile(`bad reviews|chargebacks|refunds`),
	regexp.MustCompile(`\bnet\s*(30|45|60|90)\b`),
	regexp.MustCompile(`\bout of pocket\b`),
	regexp.MustCompile(`\bfront(ing)?\s+(cash|costs|materials|labor)\b`),
	regexp.MustCompile(`\b(accounts?\s+receivable|ar)\b`),
	regexp.MustCompile(`\bline of credit\b`),
}

// attemptFailedPattern: "tried X but/however/still ..." narratives.
var attemptFailedPattern = regexp.MustCompile(
	`\b(i|we)\s+(tried|attempted|have tried|did)\b.{0,90}\b(but|however|still)\b`)

// helpRequestPattern: explicit asks for help or advice.
var helpRequestPattern = regexp.MustCompile(
	`\b(how do i|how can i|what should i do|need help|any advice)\b`)

// adviceStartPatterns match first sentences that open with advice instead of
// a first-person account.
var adviceStartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^you (should|need to|have to|must|can|could)\s`),
	regexp.MustCompile(`^raise prices`),
	regexp.MustCompile(`^i recommend`),
	regexp.MustCompile(`^can you elaborate`),
	regexp.MustCompile(`^here('?s| is) what i do`),
	regexp.MustCompile(`^if i were you`),
}

// successTokens mark celebration posts; strong negative signal.
var successTokens = []string{
	"success story", "just hit", "milestone", "celebrating", "congrats",
}

var (
	urlRe        = regexp.MustCompile(`https?://`)
	urlCTARe     = regexp.MustCompile(`\b(visit|buy|subscribe|checkout|check out|link in bio)\b`)
	botMarkers   = []string{"i am a bot", "this action was performed automatically"}
	thirdPartyRe = regexp.MustCompile(`\b(he|she|they|my friend|my client|my cousin)\b`)
)

// promoPatterns is the strict classifier's self-promotion set, broader than
// the hard-negative service pitch list.
var promoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`portfolio.*dribbble`),
	regexp.MustCompile(`packages? start at \$`),
	regexp.MustCompile(`feel free to contact me at`),
	regexp.MustCompile(`check out (my|our) (website|service|product)`),
	regexp.MustCompile(`\.myshopify\.com`),
	regexp.MustCompile(`\bbuy now\b`),
	regexp.MustCompile(`\bsubscribe\b`),
	regexp.MustCompile(`\bvisit\s+\S+\.\S+`),
	regexp.MustCompile(`\bdm me\b`),
	regexp.MustCompile(`\bcontact me\b`),
}

// strictModeratorNoticePatterns is the strict classifier's moderator set.
var strictModeratorNoticePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bplease report\b`),
	regexp.MustCompile(`\bpost\b.{0,40}\bremoved\b`),
	regexp.MustCompile(`\bspammers?\b`),
	regexp.MustCompile(`\bthis thread\b.{0,40}\bpromotion\b`),
}

// ownContextPatterns: explicit evidence the speaker runs the business.
var ownContextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bmy\s+(business|company|shop|practice|store|agency)\b`),
	regexp.MustCompile(`\b(i|we)\s+(run|own|manage|operate)\b`),
}

// businessVocabPattern: general business vocabulary; combined with strong
// first-person presence it also establishes own context.
var businessVocabPattern = regexp.MustCompile(
	`\b(business|company|shop|practice|store|agency|client|customer|revenue|sales|cash flow|payroll|invoice|supplier|vendor|employee|staff|profit|margin)s?\b`)

// firstPersonPainPatterns: the speaker's own unresolved distress.
var firstPersonPainPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bi\s+(can't|cannot|couldn't|am unable to|don't know how to)\b`),
	regexp.MustCompile(`\b(i'm|i am|we are)\s+(stuck|frustrated|overwhelmed|stressed|worried|exhausted|burned out)\b`),
	regexp.MustCompile(`\b(i|we)\s+(need|want|wish)\s+(help|advice|to fix|to solve|to figure out)\b`),
	regexp.MustCompile(`\b(i|we)\s+(regret|hate)\b`),
	regexp.MustCompile(`\b(i|we)\s+(have to|had to)\s+front\b`),
	regexp.MustCompile(`\b(i|we)\s+(keep|still)\s+(losing|fighting|dealing with)\b`),
}

// unresolvedPatterns: evidence the problem is still open.
var unresolvedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(i|we)\b.{0,24}\b(still|yet|again|ongoing|keep)\b`),
	regexp.MustCompile(`\b(i|we)\b.{0,30}\b(didn't work|not working|can't|cannot|stuck|struggling|drowning)\b`),
	regexp.MustCompile(`\b(how do i|how can i|what should i do|any advice|does anyone know)\b`),
}

// helpPatterns: question forms asking for direction.
var helpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bhow do i\b|\bhow can i\b|\bwhat should i do\b`),
	regexp.MustCompile(`\bany advice\b|\bany tips\b|\bdoes anyone know\b`),
}

// advicePhrases penalize advice-heavy language anywhere in the text.
var advicePhrases = []*regexp.Regexp{
	regexp.MustCompile(`\byou should\b`),
	regexp.MustCompile(`\byou could\b`),
	regexp.MustCompile(`\bi recommend\b`),
	regexp.MustCompile(`\byou need to\b`),
	regexp.MustCompile(`\bif i were you\b`),
}

// resolvedPlatitudes mark already-solved stories.
var resolvedPlatitudes = []string{
	"best decision i ever made", "worked great for me", "all good now",
}

// stuckPattern feeds the needs-resolution gate directly.
var stuckPattern = regexp.MustCompile(`\b(can't|cannot|stuck|struggling)\b`)

// nonsenseMarkers are known word-salad fillers.
var nonsenseMarkers = []string{
	"throttle throttle",
	"that'll do pig",
	"pork chops and applesauce",
}
