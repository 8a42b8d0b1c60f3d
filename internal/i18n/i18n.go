package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

func NewTranslations(defaultLang string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	files, err := filepath.Glob("locales/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Release management tools"

	[app_description]
	other = "Aggregated views of build artifacts, package ownership and pending review requests from the Open Build Service and Gitea"

	[help_command_usage]
	other = "Show help for relx and its subcommands"

	[apiurl_flag_usage]
	other = "URL of the Open Build Service API instance"

	[debug_flag_usage]
	other = "Enable debug logging"

	[operation_cancelled]
	other = "Operation cancelled by user."

	[artifacts_command_usage]
	other = "Return the list of artifacts from an OBS project"

	[artifacts_project_flag_usage]
	other = "OBS/IBS project"

	[artifacts_listing_packages]
	other = "Listing packages..."

	[artifacts_progress]
	other = "Searching artifacts {{.Done}}/{{.Total}}"

	[artifacts_repo_failed]
	other = "Repository {{.Repo}} failed: {{.Error}}"

	[packages_command_usage]
	other = "Return OBS information for the given binary package"

	[packages_project_flag_usage]
	other = "OBS/IBS project"

	[packages_product_flag_usage]
	other = "OBS/IBS product"

	[packages_fetching]
	other = "Fetching info for {{.Binary}}..."

	[packages_source_package]
	other = "Source package"

	[packages_shipped]
	other = "Shipped"

	[packages_shipped_yes]
	other = "YES - {{.Product}}"

	[packages_shipped_no]
	other = "*** NO ***"

	[reviews_command_usage]
	other = "Review submit, delete and bugowner requests"

	[reviews_project_flag_usage]
	other = "OBS/IBS project. Required for the OBS provider"

	[reviews_staging_flag_usage]
	other = "Staging letter"

	[reviews_bugowner_flag_usage]
	other = "Review bugowner requests"

	[reviews_repository_flag_usage]
	other = "Gitea repository"

	[reviews_branch_flag_usage]
	other = "Gitea target branch"

	[reviews_reviewer_flag_usage]
	other = "Gitea reviewer"

	[reviews_prs_flag_usage]
	other = "Comma-separated list of PR IDs to filter by"

	[reviews_fetching]
	other = "Fetching review requests..."

	[reviews_list_title]
	other = "Request Reviews for {{.Provider}}"

	[reviews_none_pending]
	other = "No pending reviews."

	[reviews_missing_prs]
	other = "Warning: The following PRs were not found: {{.IDs}}"

	[reviews_start_prompt]
	other = "Start the reviews ({{.Count}})?"

	[reviews_review_prompt]
	other = "[{{.Index}}/{{.Total}}] Review {{.ID}} - {{.Name}}?"

	[reviews_fetching_diff]
	other = "Fetching diff for {{.ID}}..."

	[reviews_approve_prompt]
	other = "Approve {{.ID}} - {{.Name}}?"

	[reviews_approving]
	other = "Approving {{.ID}}..."

	[reviews_all_done]
	other = "All reviews done."

	[reviews_pager_failed]
	other = "Could not display the diff: {{.Error}}"

	[users_command_usage]
	other = "Search OBS information for the given user/group"

	[users_group_flag_usage]
	other = "Search for a group"

	[users_login_flag_usage]
	other = "Search user by login"

	[users_email_flag_usage]
	other = "Search user by email"

	[users_name_flag_usage]
	other = "Search user by real name"

	[users_running]
	other = "Running..."

	[users_user_not_found]
	other = "User '{{.Text}}' not found"

	[users_group_not_found]
	other = "Group '{{.Text}}' not found"

	[users_search_mode_required]
	other = "Exactly one of --group, --login, --email or --name is required"

	[ui_error.try_suggestion]
	other = "💡 Try: "

	[factory_already_registered]
	other = "Factory '{{.FactoryName}}' is already registered"
	`
