// Package votingengine implements the generic ballot box inside the
// governance context.
//
// Every workflow stage in the DAO (document qualification and verification,
// curator and expert promotion) runs on the same ballot record keyed by
// (ballot type, numeric id). The module enforces the strict voting window,
// the one-ballot-per-account guard, and strict-majority resolution; which
// roles may cast in which ballot type is the calling pipeline's concern.
package votingengine
