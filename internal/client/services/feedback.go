package services

import (
	"context"
	"fmt"

	"github.com/bizilabs/streeek/internal/client/mappers"
	"github.com/bizilabs/streeek/internal/client/models"
	"github.com/bizilabs/streeek/internal/client/remote"
	"github.com/bizilabs/streeek/internal/logging"
)

// FeedbackService surfaces the project's GitHub issue tracker as the
// in-client feedback channel.
type FeedbackService interface {
	// ListIssues returns the tracker's issues. Entries that cannot be
	// mapped are skipped with a warning so one bad record does not hide
	// the rest.
	ListIssues(ctx context.Context) ([]models.Issue, error)

	// CreateIssue files a new feedback issue and returns it.
	CreateIssue(ctx context.Context, title, body string, labels []string) (*models.Issue, error)
}

type feedbackService struct {
	github remote.GithubClient
	log    logging.Logger
}

// NewFeedbackService constructs a FeedbackService on top of the GitHub
// client.
func NewFeedbackService(github remote.GithubClient, log logging.Logger) FeedbackService {
	return &feedbackService{
		github: github,
		log:    log.With("service", "feedback"),
	}
}

func (s *feedbackService) ListIssues(ctx context.Context) ([]models.Issue, error) {
	dtos, err := s.github.ListIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	issues := make([]models.Issue, 0, len(dtos))
	for _, dto := range dtos {
		issue, err := mappers.IssueToDomain(dto)
		if err != nil {
			s.log.Warn(ctx, "skipping unmappable issue", "error", err)
			continue
		}
		issues = append(issues, *issue)
	}
	return issues, nil
}

func (s *feedbackService) CreateIssue(ctx context.Context, title, body string, labels []string) (*models.Issue, error) {
	dto, err := s.github.CreateIssue(ctx, remote.CreateIssueRequest{
		Title:  title,
		Body:   body,
		Labels: labels,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	issue, err := mappers.IssueToDomain(*dto)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "feedback issue created", "number", issue.Number)
	return issue, nil
}
