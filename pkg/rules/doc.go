// Package rules compiles declarative validation rule sets into executable
// per-field validators.
//
// A rule set is static configuration: an ordered list of field rules, each
// naming a request field ("body.discount", "query.page"), the rule tokens to
// apply in order, and the message reported when any of them fails. Rule sets
// are compiled once at startup into a Registry; malformed configuration
// (unknown tokens, bad patterns) fails construction rather than surfacing at
// request time.
//
// At request time a compiled validator list runs against the three request
// sections (body, query, params), collects every failure without
// short-circuiting, and returns an Outcome mapping bare field names to the
// messages that fired.
package rules
