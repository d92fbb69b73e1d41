// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FundRecord is the extracted (id, name) pair for one fund. Both fields
// are non-empty after whitespace trimming; rows that cannot satisfy that
// never become records.
type FundRecord struct {
	// ID is the fund code from the 基金碼 column (e.g. "A001").
	ID string `json:"id" yaml:"id"`

	// Name is the full fund name from the 基金全稱 column.
	Name string `json:"name" yaml:"name"`
}
