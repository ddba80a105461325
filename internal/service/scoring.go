package service

import (
	"github.com/shopspring/decimal"

	"github.com/indersauwalia/CrediScore/internal/model"
)

// Score bounds. The base already sits at the floor and every component adds
// a non-negative bonus, so only the cap needs applying.
const (
	BaseScore = 300
	MaxScore  = 900
)

// VerificationBonus is added to the score once per approved verification cycle.
const VerificationBonus = 50

var (
	surplusTier1 = decimal.NewFromInt(30000)
	surplusTier2 = decimal.NewFromInt(20000)
	surplusTier3 = decimal.NewFromInt(10000)
	surplusTier4 = decimal.NewFromInt(5000)

	utilizationLow = decimal.NewFromFloat(0.2)
	utilizationMid = decimal.NewFromFloat(0.4)
)

// CalculateCrediScore derives the CrediScore from a financial profile.
// Pure function; callers are responsible for rejecting non-positive income
// before persisting a profile.
func CalculateCrediScore(p *model.FinancialProfile) int {
	score := BaseScore

	// Surplus income, the main repayment-capacity signal.
	surplus := p.MonthlyIncome.Sub(p.MonthlyExpense).Sub(p.ExistingEMI)
	switch {
	case surplus.GreaterThanOrEqual(surplusTier1):
		score += 250
	case surplus.GreaterThanOrEqual(surplusTier2):
		score += 200
	case surplus.GreaterThanOrEqual(surplusTier3):
		score += 150
	case surplus.GreaterThanOrEqual(surplusTier4):
		score += 100
	case surplus.IsPositive():
		score += 50
	}

	// Job stability: current role tenure, then overall experience.
	switch {
	case p.CurrentExpYears >= 5:
		score += 100
	case p.CurrentExpYears >= 3:
		score += 80
	case p.CurrentExpYears >= 1:
		score += 40
	}
	switch {
	case p.TotalExpYears >= 10:
		score += 80
	case p.TotalExpYears >= 5:
		score += 50
	}

	switch p.EmploymentType {
	case model.EmploymentSalaried:
		score += 60
	case model.EmploymentBusiness, model.EmploymentSelfEmployed:
		score += 80
	case model.EmploymentFreelancer:
		score += 40
	}

	switch p.ResidenceType {
	case model.ResidenceOwned:
		score += 120
	case model.ResidenceFamily:
		score += 70
	}

	switch {
	case p.Dependents <= 1:
		score += 60
	case p.Dependents <= 3:
		score += 30
	}

	// Credit card utilization. Zero income means zero utilization rather
	// than a division failure.
	utilization := decimal.Zero
	if p.MonthlyIncome.IsPositive() {
		utilization = p.CreditCardSpend.Div(p.MonthlyIncome)
	}
	switch {
	case utilization.LessThan(utilizationLow):
		score += 70
	case utilization.LessThan(utilizationMid):
		score += 40
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score
}

// CreditLimitForScore maps a CrediScore to the assigned credit limit tier.
func CreditLimitForScore(score int) decimal.Decimal {
	switch {
	case score >= 750:
		return decimal.NewFromInt(400000)
	case score >= 700:
		return decimal.NewFromInt(250000)
	case score >= 650:
		return decimal.NewFromInt(150000)
	case score >= 600:
		return decimal.NewFromInt(100000)
	default:
		return decimal.NewFromInt(50000)
	}
}
