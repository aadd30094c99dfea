package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hirable/webgate/internal/models"
	pkgerrors "github.com/hirable/webgate/pkg/errors"
)

// WildcardSuffix marks a pattern that matches every sub-path of its prefix.
const WildcardSuffix = "/**"

// LoginRoute is where users without any session are sent on denial.
const LoginRoute = "/auth/login"

// Entry maps one route pattern to the roles allowed on it. An empty role
// set means the route is unrestricted.
type Entry struct {
	Pattern      string
	AllowedRoles []models.Role
}

// Table resolves (path, role) to an access decision and role to its default
// redirect. It is immutable after construction.
type Table struct {
	exact     map[string][]models.Role
	wildcards []wildcardEntry
	redirects map[models.Role]string
}

type wildcardEntry struct {
	prefix string
	roles  []models.Role
}

// New validates and indexes the entry set. Duplicate patterns and two
// wildcard patterns with equal prefix length are configuration errors, as
// there is no defined tie-break between them.
func New(entries []Entry, redirects map[models.Role]string) (*Table, error) {
	t := &Table{
		exact:     make(map[string][]models.Role),
		redirects: make(map[models.Role]string, len(redirects)),
	}

	seenPrefixLen := make(map[int]string)
	for _, e := range entries {
		if strings.HasSuffix(e.Pattern, WildcardSuffix) {
			prefix := strings.TrimSuffix(e.Pattern, WildcardSuffix)
			for _, w := range t.wildcards {
				if w.prefix == prefix {
					return nil, fmt.Errorf("%w: %q", pkgerrors.ErrDuplicatePattern, e.Pattern)
				}
			}
			if prev, ok := seenPrefixLen[len(prefix)]; ok {
				return nil, fmt.Errorf("%w: %q and %q", pkgerrors.ErrAmbiguousWildcard, prev, e.Pattern)
			}
			seenPrefixLen[len(prefix)] = e.Pattern
			t.wildcards = append(t.wildcards, wildcardEntry{prefix: prefix, roles: e.AllowedRoles})
			continue
		}
		if _, ok := t.exact[e.Pattern]; ok {
			return nil, fmt.Errorf("%w: %q", pkgerrors.ErrDuplicatePattern, e.Pattern)
		}
		t.exact[e.Pattern] = e.AllowedRoles
	}

	// Longest literal prefix first, so the first match wins.
	sort.Slice(t.wildcards, func(i, j int) bool {
		return len(t.wildcards[i].prefix) > len(t.wildcards[j].prefix)
	})

	for _, role := range models.Roles {
		target, ok := redirects[role]
		if !ok || target == "" {
			return nil, fmt.Errorf("%w: %s", pkgerrors.ErrMissingRedirect, role)
		}
		t.redirects[role] = target
	}

	return t, nil
}

// AllowedRoles returns the role set for a path. An exact entry always wins
// over any wildcard; among wildcards the longest matching prefix wins. No
// entry means the path is unrestricted and the returned set is empty.
func (t *Table) AllowedRoles(path string) []models.Role {
	if roles, ok := t.exact[path]; ok {
		return roles
	}
	for _, w := range t.wildcards {
		if strings.HasPrefix(path, w.prefix) {
			return w.roles
		}
	}
	return nil
}

// IsAllowed reports whether a role may view a path. An absent role is never
// allowed; an unrestricted path allows every present role.
func (t *Table) IsAllowed(path string, role models.Role) bool {
	if role == "" {
		return false
	}
	allowed := t.AllowedRoles(path)
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// DefaultRedirect is total over the known role set; New rejects tables that
// leave a role without a target.
func (t *Table) DefaultRedirect(role models.Role) (string, error) {
	target, ok := t.redirects[role]
	if !ok {
		return "", fmt.Errorf("%w: %s", pkgerrors.ErrUnknownRole, role)
	}
	return target, nil
}

// Default is the route permission table of the job board application.
func Default() *Table {
	t, err := New(
		[]Entry{
			{Pattern: "/feed", AllowedRoles: []models.Role{models.RoleCandidate}},
			{Pattern: "/profile", AllowedRoles: []models.Role{models.RoleCandidate}},
			{Pattern: "/applications", AllowedRoles: []models.Role{models.RoleCandidate}},
			{Pattern: "/dashboard/employer", AllowedRoles: []models.Role{models.RoleEmployer}},
			{Pattern: "/dashboard/employer" + WildcardSuffix, AllowedRoles: []models.Role{models.RoleEmployer}},
		},
		map[models.Role]string{
			models.RoleCandidate: "/feed",
			models.RoleEmployer:  "/dashboard/employer",
		},
	)
	if err != nil {
		// The static table above is covered by tests; reaching this is a bug.
		panic(err)
	}
	return t
}
