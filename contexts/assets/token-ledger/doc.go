// Package tokenledger tracks fungible balances per token id. It supports
// single and batch mints, holder and operator transfers, and blanket
// operator approvals. The curation pipeline calls its batch mint to reward
// verified contributions.
package tokenledger
