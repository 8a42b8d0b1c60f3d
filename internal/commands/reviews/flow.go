package reviews

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/i18n"
	"github.com/thomas-vilte/relx/internal/logger"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/providers"
	"github.com/thomas-vilte/relx/internal/ui"
)

// Flow drives the interactive review loop: list pending requests, then for
// each one show its diff and ask for approval. Answering "a" at any prompt
// aborts the whole run with ErrUserCancelled.
type Flow struct {
	provider providers.ReviewProvider
	prompter ui.Prompter
	pager    func(ctx context.Context, w io.Writer, body string) error
	out      io.Writer
}

func (f *Flow) Run(ctx context.Context, t *i18n.Translations, opts options, kind models.ProviderKind, prIDs []string) error {
	spinner := ui.NewSmartSpinner(t.GetMessage("reviews_fetching", 0, nil))
	spinner.Start()
	requests, err := f.provider.ListRequests(ctx, opts.listParams(kind))
	spinner.Stop()
	if err != nil {
		return err
	}

	if len(prIDs) > 0 {
		requests = f.filterRequests(ctx, t, requests, prIDs)
	}

	title := t.GetMessage("reviews_list_title", 0, map[string]interface{}{
		"Provider": strings.ToUpper(string(kind)),
	})
	ui.PrintPanel(f.out, title, f.requestLines(t, requests))

	if len(requests) == 0 {
		return nil
	}

	return f.reviewLoop(ctx, t, opts, kind, requests)
}

// filterRequests keeps only the requests named in prIDs, preserving backend
// order, and warns about IDs that matched nothing.
func (f *Flow) filterRequests(ctx context.Context, t *i18n.Translations, requests []models.Request, prIDs []string) []models.Request {
	wanted := make(map[string]bool, len(prIDs))
	for _, id := range prIDs {
		wanted[id] = false
	}

	var filtered []models.Request
	for _, request := range requests {
		id := normalizeID(request.ID)
		if _, ok := wanted[id]; ok {
			wanted[id] = true
			filtered = append(filtered, request)
		}
	}

	var missing []string
	for _, id := range prIDs {
		if !wanted[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		logger.Warn(ctx, "requested reviews not found", "ids", missing)
		ui.PrintWarning(f.out, t.GetMessage("reviews_missing_prs", 0, map[string]interface{}{
			"IDs": strings.Join(missing, ", "),
		}))
	}
	return filtered
}

func normalizeID(id string) string {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return id
}

func (f *Flow) requestLines(t *i18n.Translations, requests []models.Request) []string {
	if len(requests) == 0 {
		return []string{t.GetMessage("reviews_none_pending", 0, nil)}
	}
	lines := make([]string, 0, len(requests))
	for _, request := range requests {
		lines = append(lines, fmt.Sprintf("- %s: %s", request.DisplayRef(), request.Name))
	}
	return lines
}

func (f *Flow) reviewLoop(ctx context.Context, t *i18n.Translations, opts options, kind models.ProviderKind, requests []models.Request) error {
	start, err := f.prompter.Ask(t.GetMessage("reviews_start_prompt", 0, map[string]interface{}{
		"Count": len(requests),
	}), []string{"y", "n"}, "y")
	if err != nil {
		return err
	}
	if start == "n" {
		return apperrors.ErrUserCancelled
	}

	for index, request := range requests {
		answer, err := f.prompter.Ask(t.GetMessage("reviews_review_prompt", 0, map[string]interface{}{
			"Index": index + 1,
			"Total": len(requests),
			"ID":    request.ID,
			"Name":  request.Name,
		}), []string{"y", "n", "a"}, "y")
		if err != nil {
			return err
		}

		switch answer {
		case "a":
			return apperrors.ErrUserCancelled
		case "n":
			continue
		}

		if err := f.reviewOne(ctx, t, opts, kind, request); err != nil {
			return err
		}
	}

	ui.PrintPanel(f.out, "", []string{t.GetMessage("reviews_all_done", 0, nil)})
	return nil
}

func (f *Flow) reviewOne(ctx context.Context, t *i18n.Translations, opts options, kind models.ProviderKind, request models.Request) error {
	spinner := ui.NewSmartSpinner(t.GetMessage("reviews_fetching_diff", 0, map[string]interface{}{
		"ID": request.ID,
	}))
	spinner.Start()
	diff, err := f.provider.GetRequestDiff(ctx, opts.diffParams(kind, request.ID))
	spinner.Stop()
	if err != nil {
		return err
	}

	// A broken pager must not lose the review session.
	if err := f.pager(ctx, f.out, diff); err != nil {
		logger.Warn(ctx, "pager failed", "error", err)
		ui.PrintWarning(f.out, t.GetMessage("reviews_pager_failed", 0, map[string]interface{}{
			"Error": err.Error(),
		}))
	}

	answer, err := f.prompter.Ask(t.GetMessage("reviews_approve_prompt", 0, map[string]interface{}{
		"ID":   request.ID,
		"Name": request.Name,
	}), []string{"y", "n", "a"}, "y")
	if err != nil {
		return err
	}

	switch answer {
	case "a":
		return apperrors.ErrUserCancelled
	case "n":
		return nil
	}

	spinner = ui.NewSmartSpinner(t.GetMessage("reviews_approving", 0, map[string]interface{}{
		"ID": request.ID,
	}))
	spinner.Start()
	lines, err := f.provider.ApproveRequest(ctx, opts.approveParams(kind, request.ID))
	spinner.Stop()
	if err != nil {
		return err
	}

	ui.PrintPanel(f.out, "", lines)
	return nil
}
