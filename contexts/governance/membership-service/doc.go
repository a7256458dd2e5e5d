// Package membershipservice implements the DAO membership registry inside
// the governance context.
//
// The module is the single source of truth for member records keyed by
// account identity: open joins, privileged role assignment, the per-account
// vote counter with its threshold promotion, and the role overwrites driven
// by the promotion pipeline. Business rules stay in application/domain
// layers behind ports and adapters.
package membershipservice
