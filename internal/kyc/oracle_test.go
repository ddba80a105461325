package kyc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/indersauwalia/CrediScore/internal/errors"
)

func TestValidateDetails(t *testing.T) {
	cases := []struct {
		name               string
		pan, account, ifsc string
		wantErr            error
	}{
		{"valid", "ABCDE1234F", "123456789012", "SBIN0001234", nil},
		{"valid lowercase", "abcde1234f", "123456789012", "sbin0001234", nil},
		{"empty pan", "", "123456789012", "SBIN0001234", apperrors.ErrInvalidPAN},
		{"pan wrong shape", "AB1234567F", "123456789012", "SBIN0001234", apperrors.ErrInvalidPAN},
		{"account too short", "ABCDE1234F", "1234567", "SBIN0001234", apperrors.ErrInvalidAccountNumber},
		{"ifsc missing zero", "ABCDE1234F", "123456789012", "SBIN1001234", apperrors.ErrInvalidIFSC},
		{"ifsc too short", "ABCDE1234F", "123456789012", "SBIN012", apperrors.ErrInvalidIFSC},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDetails(tc.pan, tc.account, tc.ifsc)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestOracleVerify(t *testing.T) {
	oracle := NewOracle(DemoAccounts())

	t.Run("exact match", func(t *testing.T) {
		assert.True(t, oracle.Verify("ABCDE1234F", "123456789012", "SBIN0001234", "Aarav Sharma"))
	})

	t.Run("case-insensitive pan, ifsc and name", func(t *testing.T) {
		assert.True(t, oracle.Verify("abcde1234f", "123456789012", "sbin0001234", "aarav sharma"))
	})

	t.Run("holder name mismatch", func(t *testing.T) {
		assert.False(t, oracle.Verify("ABCDE1234F", "123456789012", "SBIN0001234", "Priya Patel"))
	})

	t.Run("mixed tuples from different rows", func(t *testing.T) {
		assert.False(t, oracle.Verify("ABCDE1234F", "987654321098", "SBIN0001234", "Aarav Sharma"))
	})

	t.Run("unknown account", func(t *testing.T) {
		assert.False(t, oracle.Verify("ZZZZZ9999Z", "000011112222", "SBIN0001234", "Aarav Sharma"))
	})
}

func TestNewOracleNormalizesRows(t *testing.T) {
	oracle := NewOracle([]VerifiedAccount{
		{PAN: "qwert5678l", AccountNo: "111122223333", IFSC: "utib0004321", HolderName: "Neha Singh"},
	})
	assert.True(t, oracle.Verify("QWERT5678L", "111122223333", "UTIB0004321", "Neha Singh"))
}
