package classifier

import (
	"regexp"

	"github.com/jonesrussell/painminer/internal/domain"
)

// categoryRule pairs a vocabulary pattern with its category.
type categoryRule struct {
	pattern  *regexp.Regexp
	category domain.Category
}

// categoryRules in fixed priority order. The first matching rule wins;
// priority is never re-derived from score magnitude, so a text matching both
// cash-flow and staffing vocabulary is always cash_flow_finance.
var categoryRules = []categoryRule{
	{
		regexp.MustCompile(`\b(cash flow|payroll|overhead|expenses|margins?|revenue|profit|pricing|invoice|(losing|lost)\s+money|net\s*(30|45|60|90)|accounts?\s+receivable|line of credit)\b`),
		domain.CategoryCashFlowFinance,
	},
	{
		regexp.MustCompile(`\b(hire|hiring|employee|staff|team|turnover|quit|recruit)\b`),
		domain.CategoryStaffing,
	},
	{
		regexp.MustCompile(`\b(systems?|process|workflow|manual|operations?|sop|accounting setup)\b`),
		domain.CategoryOperationsSystems,
	},
	{
		regexp.MustCompile(`\b(marketing|ads?|leads?|seo|campaign|subscribers?|conversion)\b`),
		domain.CategoryMarketingGrowth,
	},
	{
		regexp.MustCompile(`\b(tax|irs|legal|lawyer|lawsuit|compliance|contract)\b`),
		domain.CategoryLegalCompliance,
	},
	{
		regexp.MustCompile(`\b(exhausted|burned out|burnout|overwhelmed|stressed)\b`),
		domain.CategoryFounderBurnout,
	},
	{
		regexp.MustCompile(`\b(customer|client|refund|chargeback|review)\b`),
		domain.CategoryCustomerManagement,
	},
}

// assignCategory returns the first matching category for lowercased text,
// falling back to general_business_pain.
func assignCategory(lower string) domain.Category {
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(lower) {
			return rule.category
		}
	}
	return domain.CategoryGeneralBusiness
}
