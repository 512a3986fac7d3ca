// Package bankdetails validates payout and collection bank account details
// before any payment provider is contacted.
//
// Each supported country has one descriptor holding the fields a form must
// collect and the checks for that country's clearing system (ACH, BACS, BECS,
// SEPA and the African rails). Validate and RequiredFields both read that
// descriptor, so the two cannot drift apart.
//
// Validation never fails fast: common checks and country checks all run and
// every problem is reported in one Result.
package bankdetails
