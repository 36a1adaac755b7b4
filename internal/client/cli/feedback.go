package cli

import (
	"context"
	"fmt"
	"os"
)

// feedbackLabel marks issues filed from the client.
const feedbackLabel = "in-app"

// ListFeedback prints the feedback issues on the product repository.
func (a *App) ListFeedback(ctx context.Context) error {
	if a.feedback == nil {
		printlnFn("Sign in first to use feedback.")
		return nil
	}

	issues, err := a.feedback.ListIssues(ctx)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	if len(issues) == 0 {
		printlnFn("No feedback issues.")
		return nil
	}

	for _, issue := range issues {
		state := "open"
		if issue.ClosedAt != nil {
			state = "closed"
		}
		printlnFn(fmt.Sprintf("#%d [%s] %s (by %s)", issue.Number, state, issue.Title, issue.User.Login))
	}
	return nil
}

// SendFeedback files a new feedback issue interactively.
func (a *App) SendFeedback(ctx context.Context) error {
	if a.feedback == nil {
		printlnFn("Sign in first to use feedback.")
		return nil
	}

	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	body, err := GetMultiline(a.reader, "Describe the problem or suggestion", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	issue, err := a.feedback.CreateIssue(ctx, title, body, []string{feedbackLabel})
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Thanks! Filed as #%d: %s", issue.Number, issue.URL))
	return nil
}
