package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bizilabs/streeek/internal/client/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGithub struct {
	user   func() (*remote.GithubUserDTO, error)
	list   func() ([]remote.GithubIssueDTO, error)
	create func(req remote.CreateIssueRequest) (*remote.GithubIssueDTO, error)
}

func (f *fakeGithub) AuthenticatedUser(_ context.Context) (*remote.GithubUserDTO, error) {
	return f.user()
}

func (f *fakeGithub) ListIssues(_ context.Context) ([]remote.GithubIssueDTO, error) {
	return f.list()
}

func (f *fakeGithub) CreateIssue(_ context.Context, req remote.CreateIssueRequest) (*remote.GithubIssueDTO, error) {
	return f.create(req)
}

func issueDTO(id int64, title string) remote.GithubIssueDTO {
	return remote.GithubIssueDTO{
		ID:     ptr(id),
		URL:    "https://github.com/bizilabs/streeek/issues/1",
		Number: 1,
		Title:  title,
		User: remote.GithubUserDTO{
			ID:        ptr(int64(42)),
			Login:     "octocat",
			AvatarURL: "https://avatars.example.com/42",
		},
		CreatedAt: "2024-03-01T10:00:00Z",
		UpdatedAt: "2024-03-01T10:00:00Z",
	}
}

func TestFeedbackService_ListSkipsUnmappableIssues(t *testing.T) {
	broken := issueDTO(2, "no identity")
	broken.ID = nil

	svc := NewFeedbackService(&fakeGithub{
		list: func() ([]remote.GithubIssueDTO, error) {
			return []remote.GithubIssueDTO{issueDTO(1, "crash on sync"), broken}, nil
		},
	}, testLogger())

	issues, err := svc.ListIssues(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "crash on sync", issues[0].Title)
}

func TestFeedbackService_ListError(t *testing.T) {
	apiErr := errors.New("rate limited")
	svc := NewFeedbackService(&fakeGithub{
		list: func() ([]remote.GithubIssueDTO, error) { return nil, apiErr },
	}, testLogger())

	_, err := svc.ListIssues(context.Background())
	assert.ErrorIs(t, err, apiErr)
}

func TestFeedbackService_CreateIssue(t *testing.T) {
	svc := NewFeedbackService(&fakeGithub{
		create: func(req remote.CreateIssueRequest) (*remote.GithubIssueDTO, error) {
			assert.Equal(t, "streeek-feedback", req.Labels[0])
			dto := issueDTO(3, req.Title)
			return &dto, nil
		},
	}, testLogger())

	issue, err := svc.CreateIssue(context.Background(), "widget stuck", "the home widget stops updating", []string{"streeek-feedback"})
	require.NoError(t, err)
	assert.Equal(t, "widget stuck", issue.Title)
	assert.Equal(t, int64(3), issue.ID)
}
