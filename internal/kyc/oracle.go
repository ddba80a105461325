package kyc

import (
	"regexp"
	"strings"

	apperrors "github.com/indersauwalia/CrediScore/internal/errors"
)

var (
	panRegex  = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	ifscRegex = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// VerifiedAccount is one row of the simulated bank-verification table.
type VerifiedAccount struct {
	PAN        string
	AccountNo  string
	IFSC       string
	HolderName string
}

// Oracle simulates an external KYC/bank-statement verifier with a fixed
// lookup table of verified accounts. Membership is an exact match on
// {PAN, account, IFSC} with a case-insensitive holder name check.
type Oracle struct {
	accounts []VerifiedAccount
}

// NewOracle builds an oracle over the given verified accounts.
func NewOracle(accounts []VerifiedAccount) *Oracle {
	normalized := make([]VerifiedAccount, len(accounts))
	for i, acc := range accounts {
		normalized[i] = VerifiedAccount{
			PAN:        strings.ToUpper(acc.PAN),
			AccountNo:  acc.AccountNo,
			IFSC:       strings.ToUpper(acc.IFSC),
			HolderName: acc.HolderName,
		}
	}
	return &Oracle{accounts: normalized}
}

// DemoAccounts is the seeded verification table used outside of tests.
func DemoAccounts() []VerifiedAccount {
	return []VerifiedAccount{
		{PAN: "ABCDE1234F", AccountNo: "123456789012", IFSC: "SBIN0001234", HolderName: "Aarav Sharma"},
		{PAN: "FGHIJ5678K", AccountNo: "987654321098", IFSC: "HDFC0000256", HolderName: "Priya Patel"},
		{PAN: "LMNOP9876Z", AccountNo: "555566667777", IFSC: "ICIC0000001", HolderName: "Rohan Mehta"},
	}
}

// ValidateDetails checks the syntactic shape of the submitted identifiers.
// PAN and IFSC are case-normalized before matching.
func ValidateDetails(pan, accountNo, ifsc string) error {
	if pan == "" || !panRegex.MatchString(strings.ToUpper(pan)) {
		return apperrors.ErrInvalidPAN
	}
	if len(accountNo) < 8 {
		return apperrors.ErrInvalidAccountNumber
	}
	if ifsc == "" || !ifscRegex.MatchString(strings.ToUpper(ifsc)) {
		return apperrors.ErrInvalidIFSC
	}
	return nil
}

// Verify reports whether the tuple matches a verified account whose holder
// name matches the acting user's name (case-insensitive).
func (o *Oracle) Verify(pan, accountNo, ifsc, userName string) bool {
	pan = strings.ToUpper(pan)
	ifsc = strings.ToUpper(ifsc)
	for _, acc := range o.accounts {
		if acc.PAN == pan && acc.AccountNo == accountNo && acc.IFSC == ifsc &&
			strings.EqualFold(acc.HolderName, userName) {
			return true
		}
	}
	return false
}
