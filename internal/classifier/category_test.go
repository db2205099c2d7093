package classifier

import (
	"testing"

	"github.com/jonesrussell/painminer/internal/domain"
)

func TestAssignCategory(t *testing.T) {
	tests := []struct {
		text string
		want domain.Category
	}{
		{"my cash flow dried up after the expansion", domain.CategoryCashFlowFinance},
		{"losing money every single month", domain.CategoryCashFlowFinance},
		{"hiring a reliable tech is impossible here", domain.CategoryStaffing},
		{"our whole workflow is manual spreadsheets", domain.CategoryOperationsSystems},
		{"the ads bring clicks but no conversion", domain.CategoryMarketingGrowth},
		{"the irs sent another notice about the filing", domain.CategoryLegalCompliance},
		{"completely burned out after two years of this", domain.CategoryFounderBurnout},
		{"a chargeback dispute every other week", domain.CategoryCustomerManagement},
		{"everything feels harder than it should be", domain.CategoryGeneralBusiness},
		// payroll and hiring both present: the cash flow rule wins
		{"payroll plus hiring trouble at the same time", domain.CategoryCashFlowFinance},
	}

	for _, tt := range tests {
		if got := assignCategory(tt.text); got != tt.want {
			t.Errorf("assignCategory(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
