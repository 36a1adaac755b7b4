package mappers

import (
	"fmt"

	"github.com/bizilabs/streeek/internal/client/models"
	"github.com/bizilabs/streeek/internal/client/remote"
	"github.com/bizilabs/streeek/internal/common"
	"github.com/bizilabs/streeek/internal/timex"
)

// IssueToDomain maps a GitHub issue. Timestamps are UTC; ClosedAt maps to
// absence when the issue is open.
func IssueToDomain(dto remote.GithubIssueDTO) (*models.Issue, error) {
	if dto.ID == nil {
		return nil, fmt.Errorf("issue: %w", common.ErrMissingIdentity)
	}
	user, err := GithubUserToDomain(dto.User)
	if err != nil {
		return nil, err
	}

	labels := make([]models.GithubLabel, 0, len(dto.Labels))
	for _, l := range dto.Labels {
		labels = append(labels, GithubLabelToDomain(l))
	}

	issue := &models.Issue{
		ID:        *dto.ID,
		URL:       dto.URL,
		Number:    dto.Number,
		Title:     dto.Title,
		Body:      orEmpty(dto.Body),
		User:      *user,
		Labels:    labels,
		CreatedAt: timex.OrNowUTC(timex.Parse(dto.CreatedAt, timex.FormatCache)),
		UpdatedAt: timex.OrNowUTC(timex.Parse(dto.UpdatedAt, timex.FormatCache)),
	}
	if dto.ClosedAt != nil {
		if closed, ok := timex.Parse(*dto.ClosedAt, timex.FormatCache); ok {
			issue.ClosedAt = &closed
		}
	}
	return issue, nil
}

// IssueToDTO maps a domain issue back to its wire shape for outbound calls.
func IssueToDTO(issue models.Issue) remote.GithubIssueDTO {
	id := issue.ID
	body := issue.Body

	labels := make([]remote.GithubLabelDTO, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, GithubLabelToDTO(l))
	}

	dto := remote.GithubIssueDTO{
		ID:        &id,
		URL:       issue.URL,
		Number:    issue.Number,
		Title:     issue.Title,
		Body:      &body,
		User:      GithubUserToDTO(issue.User),
		Labels:    labels,
		CreatedAt: timex.Render(issue.CreatedAt, timex.FormatCache),
		UpdatedAt: timex.Render(issue.UpdatedAt, timex.FormatCache),
	}
	if issue.ClosedAt != nil {
		closed := timex.Render(*issue.ClosedAt, timex.FormatCache)
		dto.ClosedAt = &closed
	}
	return dto
}

// GithubUserToDomain maps an issue author.
func GithubUserToDomain(dto remote.GithubUserDTO) (*models.GithubUser, error) {
	if dto.ID == nil {
		return nil, fmt.Errorf("github user: %w", common.ErrMissingIdentity)
	}
	return &models.GithubUser{
		ID:        *dto.ID,
		Login:     dto.Login,
		AvatarURL: dto.AvatarURL,
	}, nil
}

// GithubUserToDTO maps an issue author to its wire shape.
func GithubUserToDTO(u models.GithubUser) remote.GithubUserDTO {
	id := u.ID
	return remote.GithubUserDTO{
		ID:        &id,
		Login:     u.Login,
		AvatarURL: u.AvatarURL,
	}
}

// GithubLabelToDomain maps an issue label.
func GithubLabelToDomain(dto remote.GithubLabelDTO) models.GithubLabel {
	return models.GithubLabel{
		Name:        dto.Name,
		Color:       dto.Color,
		Description: orEmpty(dto.Description),
	}
}

// GithubLabelToDTO maps an issue label to its wire shape.
func GithubLabelToDTO(l models.GithubLabel) remote.GithubLabelDTO {
	desc := l.Description
	return remote.GithubLabelDTO{
		Name:        l.Name,
		Color:       l.Color,
		Description: &desc,
	}
}
