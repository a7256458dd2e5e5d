// Package curationpipeline implements the document approval pipeline inside
// the governance context.
//
// Contributed documents move through a qualification ballot, a verification
// ballot, and an expert-review window; a failed ballot at either stage
// short-circuits to rejection. A clean expert review marks the document
// verified and mints a shared-ownership token reward split between the
// document creator and the reviewer who finalized. The module owns upload
// records, expert reviews, the reward token id counter, and the approved
// token list; ballots and member roles are reached through ports.
package curationpipeline
