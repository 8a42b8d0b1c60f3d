package obs

import (
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strings"

	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/logger"
	"github.com/thomas-vilte/relx/internal/runner"
)

// PackageProvider implements providers.PackageProvider against the Open
// Build Service through the osc client.
type PackageProvider struct {
	apiURL string
	runner runner.Runner
}

func NewPackageProvider(apiURL string, run runner.Runner) *PackageProvider {
	return &PackageProvider{apiURL: apiURL, runner: run}
}

type ownerCollection struct {
	XMLName xml.Name `xml:"collection"`
	Owners  []struct {
		Persons []struct {
			Name string `xml:"name,attr"`
		} `xml:"person"`
		Groups []struct {
			Name string `xml:"name,attr"`
		} `xml:"group"`
	} `xml:"owner"`
}

// GetSourcePackage resolves the source package a binary was built from. The
// reverse search can report several source names; the lexicographically
// smallest wins so repeated runs stay deterministic.
func (p *PackageProvider) GetSourcePackage(ctx context.Context, project, binary string) (string, error) {
	out, err := p.runner.Run(ctx, []string{"osc", "-A", p.apiURL, "bse", binary})
	if err != nil {
		return "", err
	}

	prefix := project + " "
	names := make(map[string]struct{})
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		// The second field is "<source>:<binary flavor>"; keep the source.
		name, _, _ := strings.Cut(fields[1], ":")
		if name != "" {
			names[name] = struct{}{}
		}
	}

	if len(names) == 0 {
		return "", apperrors.NewNotFound(
			fmt.Sprintf("no source package found for %s in %s", binary, project), nil)
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	if len(sorted) > 1 {
		logger.Debug(ctx, "more than one source package found",
			"binary", binary, "project", project, "candidates", sorted)
	}
	return sorted[0], nil
}

// IsShipped reports whether the package appears as a whole name in the
// product-composer manifest. Hyphens are name-interior, so "foo" does not
// match a "foo-bar" entry. The manifest is streamed and reading stops at the
// first match.
func (p *PackageProvider) IsShipped(ctx context.Context, pkg, productComposer string) (bool, error) {
	pattern := regexp.MustCompile(`(?:^|[^-\w])` + regexp.QuoteMeta(pkg) + `(?:[^-\w]|$)`)

	args := []string{"osc", "-A", p.apiURL, "cat", productComposer}
	for line, err := range p.runner.Stream(ctx, args) {
		if err != nil {
			return false, err
		}
		if pattern.MatchString(line) {
			logger.Debug(ctx, "package found in manifest", "package", pkg, "line", line)
			return true, nil
		}
	}
	return false, nil
}

// GetBugowner returns the bugowner names for a source package and whether
// they are groups. Person owners win over group owners; neither present
// yields an empty list.
func (p *PackageProvider) GetBugowner(ctx context.Context, pkg string) ([]string, bool, error) {
	// "++" must be percent-encoded: the package name travels in a URL query.
	encodedPackage := strings.ReplaceAll(pkg, "++", "%2B%2B")
	args := []string{
		"osc", "-A", p.apiURL, "api",
		fmt.Sprintf("/search/owner?package=%s&filter=bugowner", encodedPackage),
	}

	out, err := p.runner.Run(ctx, args)
	if err != nil {
		return nil, false, apperrors.NewNotFound(fmt.Sprintf("%s has no bugowner", pkg), err)
	}

	var collection ownerCollection
	if err := xml.Unmarshal([]byte(out), &collection); err != nil {
		return nil, false, apperrors.NewBackend("could not parse owner search response", err)
	}

	var people, groups []string
	for _, owner := range collection.Owners {
		for _, person := range owner.Persons {
			people = append(people, person.Name)
		}
		for _, group := range owner.Groups {
			groups = append(groups, group.Name)
		}
	}

	if len(people) != 0 {
		return people, false, nil
	}
	if len(groups) != 0 {
		return groups, true, nil
	}

	logger.Debug(ctx, "no bugowner found", "package", pkg)
	return []string{}, false, nil
}
