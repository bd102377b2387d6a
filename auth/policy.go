package auth

import "strings"

// Requirement is the access level a route demands
type Requirement int

const (
	// Public routes dispatch with or without an identity
	Public Requirement = iota
	// Authenticated routes require a resolved identity before dispatch
	Authenticated
)

// AccessRule maps a method + path pattern to a requirement. A pattern ending
// in "/*" matches the base path and everything under it; otherwise the match
// is exact. Method "*" matches every verb.
type AccessRule struct {
	Method      string
	Pattern     string
	Requirement Requirement
}

// Policy is the ordered access table. Evaluation is first match wins and
// total: a request that matches no rule requires authentication.
type Policy struct {
	rules []AccessRule
}

// NewPolicy builds a policy from an ordered rule list. The table is loaded
// once at startup and immutable afterwards, so concurrent reads need no
// locking.
func NewPolicy(rules ...AccessRule) *Policy {
	return &Policy{rules: rules}
}

// Decide returns the requirement for a method + path pair
func (p *Policy) Decide(method, path string) Requirement {
	for _, rule := range p.rules {
		if rule.matches(method, path) {
			return rule.Requirement
		}
	}
	return Authenticated
}

// IsAllowed reports whether a request may proceed to dispatch
func (p *Policy) IsAllowed(method, path string, identityPresent bool) bool {
	if p.Decide(method, path) == Public {
		return true
	}
	return identityPresent
}

func (r AccessRule) matches(method, path string) bool {
	if r.Method != "*" && r.Method != method {
		return false
	}

	if base, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
		return path == base || strings.HasPrefix(path, base+"/")
	}

	return path == r.Pattern
}

// DefaultPolicy is the route table for this service: the login surface and
// the read side of the blog are public, the contact form accepts anonymous
// submissions, and everything else, including unknown routes, requires a
// token.
func DefaultPolicy() *Policy {
	return NewPolicy(
		AccessRule{Method: "*", Pattern: "/auth/*", Requirement: Public},
		AccessRule{Method: "GET", Pattern: "/blog/posts/*", Requirement: Public},
		AccessRule{Method: "POST", Pattern: "/contact", Requirement: Public},

		AccessRule{Method: "POST", Pattern: "/blog/posts", Requirement: Authenticated},
		AccessRule{Method: "PUT", Pattern: "/blog/posts/*", Requirement: Authenticated},
		AccessRule{Method: "DELETE", Pattern: "/blog/posts/*", Requirement: Authenticated},
		AccessRule{Method: "*", Pattern: "/contact/messages/*", Requirement: Authenticated},
		AccessRule{Method: "*", Pattern: "/users/*", Requirement: Authenticated},
	)
}
