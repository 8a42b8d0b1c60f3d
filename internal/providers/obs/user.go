package obs

import (
	"context"
	"encoding/xml"
	"fmt"
	"iter"

	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/logger"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/providers"
	"github.com/thomas-vilte/relx/internal/runner"
)

// UserProvider implements providers.UserProvider against the Open Build
// Service through the osc client.
type UserProvider struct {
	apiURL string
	runner runner.Runner
}

func NewUserProvider(apiURL string, run runner.Runner) *UserProvider {
	return &UserProvider{apiURL: apiURL, runner: run}
}

type personCollection struct {
	XMLName xml.Name        `xml:"collection"`
	Persons []personElement `xml:"person"`
}

type personElement struct {
	Login    string `xml:"login"`
	Email    string `xml:"email"`
	Realname string `xml:"realname"`
	State    string `xml:"state"`
}

type groupPerson struct {
	UserID  string        `xml:"userid,attr"`
	Persons []groupPerson `xml:"person"`
}

type groupElement struct {
	XMLName     xml.Name `xml:"group"`
	Title       string   `xml:"title"`
	Email       string   `xml:"email"`
	Maintainers []struct {
		UserID string `xml:"userid,attr"`
	} `xml:"maintainer"`
	Persons []groupPerson `xml:"person"`
}

// GetUser lazily yields users matching the search. Login and email searches
// are exact, realname is a contains match. An unknown SearchBy fails before
// any backend call.
func (p *UserProvider) GetUser(ctx context.Context, searchText string, searchBy providers.SearchBy) iter.Seq2[models.User, error] {
	return func(yield func(models.User, error) bool) {
		var match string
		switch searchBy {
		case providers.SearchByLogin:
			match = fmt.Sprintf("@login=%q", searchText)
		case providers.SearchByEmail:
			match = fmt.Sprintf("@email=%q", searchText)
		case providers.SearchByRealname:
			match = fmt.Sprintf("contains(@realname,%q)", searchText)
		default:
			yield(models.User{}, apperrors.NewInvalidArgument(
				fmt.Sprintf("invalid search mode %q, must be login, email or realname", searchBy)))
			return
		}

		args := []string{"osc", "-A", p.apiURL, "api", "/search/person?match=" + match}
		out, err := p.runner.Run(ctx, args)
		if err != nil {
			yield(models.User{}, apperrors.NewNotFound(
				fmt.Sprintf("%s not found", searchText), err))
			return
		}

		var collection personCollection
		if err := xml.Unmarshal([]byte(out), &collection); err != nil {
			yield(models.User{}, apperrors.NewBackend("could not parse person search response", err))
			return
		}

		if len(collection.Persons) == 0 {
			logger.Debug(ctx, "no users found", "search_text", searchText, "search_by", string(searchBy))
			return
		}

		for _, person := range collection.Persons {
			user := models.User{
				Login:    person.Login,
				Email:    person.Email,
				Realname: person.Realname,
				State:    person.State,
			}
			if !yield(user, nil) {
				return
			}
		}
	}
}

// GetGroup returns the group's title, email and maintainers. With
// includeMembers the direct user members are collected too, including those
// the backend nests one person level deep.
func (p *UserProvider) GetGroup(ctx context.Context, name string, includeMembers bool) (*models.Group, error) {
	args := []string{"osc", "-A", p.apiURL, "api", "/group/" + name}
	out, err := p.runner.Run(ctx, args)
	if err != nil {
		logger.Error(ctx, "error fetching group", err, "group", name)
		return nil, apperrors.NewNotFound(fmt.Sprintf("%s not found", name), err)
	}

	var element groupElement
	if err := xml.Unmarshal([]byte(out), &element); err != nil {
		return nil, apperrors.NewBackend("could not parse group response", err)
	}

	group := &models.Group{
		Name:        element.Title,
		Email:       element.Email,
		Maintainers: make([]string, 0, len(element.Maintainers)),
	}
	for _, maintainer := range element.Maintainers {
		group.Maintainers = append(group.Maintainers, maintainer.UserID)
	}

	if includeMembers {
		group.Users = collectMembers(element.Persons)
	}

	return group, nil
}

// collectMembers gathers userids at the top person level and one nested
// level below it, matching how the backend reports group membership.
func collectMembers(persons []groupPerson) []string {
	users := make([]string, 0, len(persons))
	for _, person := range persons {
		if person.UserID != "" {
			users = append(users, person.UserID)
		}
		for _, nested := range person.Persons {
			if nested.UserID != "" {
				users = append(users, nested.UserID)
			}
		}
	}
	return users
}

// GetEntityInfo resolves a name as a group or as a user by login, failing
// with NOT_FOUND when nothing matches.
func (p *UserProvider) GetEntityInfo(ctx context.Context, name string, isGroup bool) (models.Entity, error) {
	if isGroup {
		group, err := p.GetGroup(ctx, name, false)
		if err != nil {
			return nil, apperrors.NewNotFound(fmt.Sprintf("bugowner '%s' not found", name), err)
		}
		return *group, nil
	}

	for user, err := range p.GetUser(ctx, name, providers.SearchByLogin) {
		if err != nil {
			return nil, apperrors.NewNotFound(fmt.Sprintf("bugowner '%s' not found", name), err)
		}
		return user, nil
	}
	return nil, apperrors.NewNotFound(fmt.Sprintf("bugowner '%s' not found", name), nil)
}
