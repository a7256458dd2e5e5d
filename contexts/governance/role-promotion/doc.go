// Package rolepromotion runs the vote-driven promotion tracks. Members
// apply for the verifier or expert role; each application passes two
// consecutive ballots (a verification vote, then a council approval) before
// the applicant's role is overwritten in the membership registry.
package rolepromotion
