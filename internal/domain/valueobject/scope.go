package valueobject

import "strings"

// Scope narrows a plan to one domain and/or one record host name. Empty
// fields match everything.
type Scope struct {
	Domain string
	Record string
}

func (s *Scope) MatchesDomain(domain string) bool {
	if s == nil || s.Domain == "" {
		return true
	}
	return s.Domain == domain
}

func (s *Scope) MatchesRecord(domain, host string) bool {
	if !s.MatchesDomain(domain) {
		return false
	}
	if s == nil || s.Record == "" {
		return true
	}
	return strings.EqualFold(s.Record, host)
}

func (s *Scope) IsEmpty() bool {
	return s == nil || (s.Domain == "" && s.Record == "")
}
