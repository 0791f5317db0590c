package enums

import "fmt"

// LedgerEntryType separates money coming in from money going out.
type LedgerEntryType string

const (
	LedgerEntryTypeIncome  LedgerEntryType = "income"
	LedgerEntryTypeExpense LedgerEntryType = "expense"
)

var validLedgerEntryTypes = []LedgerEntryType{
	LedgerEntryTypeIncome,
	LedgerEntryTypeExpense,
}

// IsValid reports whether the value matches a known ledger entry type.
func (t LedgerEntryType) IsValid() bool {
	for _, candidate := range validLedgerEntryTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseLedgerEntryType converts raw input into LedgerEntryType.
func ParseLedgerEntryType(value string) (LedgerEntryType, error) {
	for _, candidate := range validLedgerEntryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ledger entry type %q", value)
}
