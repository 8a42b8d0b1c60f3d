package models

// ProviderKind identifies which backend a provider (or a request) belongs to.
// The set is closed: the build service and the Gitea forge.
type ProviderKind string

const (
	KindOBS   ProviderKind = "obs"
	KindGitea ProviderKind = "gitea"
)

// Request is a pending change awaiting human review. Requests are produced
// by ReviewProvider.ListRequests and never mutated afterwards.
type Request struct {
	ID   string
	Name string
	Kind ProviderKind
}

// DisplayRef returns the human-readable reference for the request:
// submit requests render as SR#<id>, pull requests as PR#<id>.
func (r Request) DisplayRef() string {
	if r.Kind == KindGitea {
		return "PR#" + r.ID
	}
	return "SR#" + r.ID
}

// RepoFilter selects which packages of a repository are inspected when
// listing artifacts.
type RepoFilter struct {
	Name    string
	Pattern string
}

// InfoRow is a single key/value line of entity information, in render order.
type InfoRow struct {
	Key   string
	Value string
}

// Entity is either a User or a Group, resolved by the user provider.
type Entity interface {
	InfoRows() []InfoRow
}

// User represents a build-service user account. Every field may be empty:
// the backend omits what it does not know.
type User struct {
	Login    string
	Email    string
	Realname string
	State    string
}

func (u User) InfoRows() []InfoRow {
	return []InfoRow{
		{Key: "User", Value: u.Login},
		{Key: "Email", Value: u.Email},
		{Key: "Name", Value: u.Realname},
		{Key: "State", Value: u.State},
	}
}

// Group represents a build-service group. Users is only populated when the
// lookup asked for the full member list.
type Group struct {
	Name        string
	Email       string
	Maintainers []string
	Users       []string
}

func (g Group) InfoRows() []InfoRow {
	rows := []InfoRow{
		{Key: "Group", Value: g.Name},
		{Key: "Email", Value: g.Email},
		{Key: "Maintainers", Value: joinList(g.Maintainers)},
	}
	if g.Users != nil {
		rows = append(rows, InfoRow{Key: "Users", Value: joinList(g.Users)})
	}
	return rows
}

func joinList(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}
