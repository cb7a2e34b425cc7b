package main

import (
	"fmt"

	"github.com/google/go-github/v74/github"
)

// NewAccountFromREST normalizes a REST user record. Avatar URLs are only
// exposed for github.com repositories.
func NewAccountFromREST(u *github.User, repo RepoContext) Account {
	if u == nil {
		return Account{}
	}
	a := Account{
		Login:      u.GetLogin(),
		ProfileURL: u.GetHTMLURL(),
	}
	if repo.IsDotCom {
		a.AvatarURL = u.GetAvatarURL()
	}
	return a
}

// NewRefFromREST normalizes a REST branch pointer.
func NewRefFromREST(b *github.PullRequestBranch) Ref {
	if b == nil {
		return Ref{}
	}
	return Ref{
		Label:    b.GetLabel(),
		Ref:      b.GetRef(),
		SHA:      b.GetSHA(),
		CloneURL: b.GetRepo().GetCloneURL(),
	}
}

// NewCommentFromRESTReview normalizes a REST review comment. A comment
// whose diff hunk does not parse fails as a whole.
func NewCommentFromRESTReview(c *github.PullRequestComment, repo RepoContext) (Comment, error) {
	hunks, err := ParseDiffHunks(c.GetDiffHunk())
	if err != nil {
		return Comment{}, fmt.Errorf("comment %d: %w", c.GetID(), err)
	}
	return Comment{
		ID:                  c.GetID(),
		NodeID:              c.GetNodeID(),
		Body:                c.GetBody(),
		Author:              NewAccountFromREST(c.GetUser(), repo),
		CreatedAt:           c.GetCreatedAt().Time,
		UpdatedAt:           c.GetUpdatedAt().Time,
		HTMLURL:             c.GetHTMLURL(),
		Path:                c.GetPath(),
		DiffHunk:            c.GetDiffHunk(),
		DiffHunks:           hunks,
		Position:            c.GetPosition(),
		OriginalPosition:    c.GetOriginalPosition(),
		CommitID:            c.GetCommitID(),
		OriginalCommitID:    c.GetOriginalCommitID(),
		PullRequestReviewID: c.GetPullRequestReviewID(),
		InReplyToID:         c.GetInReplyTo(),
		Reactions:           SummarizeRESTReactions(c.GetReactions()),
	}, nil
}

// NewCommentFromRESTIssue normalizes a REST issue-level comment. No path,
// no diff hunks.
func NewCommentFromRESTIssue(c *github.IssueComment, repo RepoContext) Comment {
	return Comment{
		ID:        c.GetID(),
		NodeID:    c.GetNodeID(),
		Body:      c.GetBody(),
		Author:    NewAccountFromREST(c.GetUser(), repo),
		CreatedAt: c.GetCreatedAt().Time,
		UpdatedAt: c.GetUpdatedAt().Time,
		HTMLURL:   c.GetHTMLURL(),
		Reactions: SummarizeRESTReactions(c.GetReactions()),
	}
}

// NewPullRequestFromREST normalizes a REST pull request from any of the
// get/list/create response shapes. List responses omit merged, so
// list-derived records always report Merged false; callers needing merge
// status must fetch the full record.
func NewPullRequestFromREST(pr *github.PullRequest, repo RepoContext) PullRequest {
	out := PullRequest{
		ID:        pr.GetID(),
		NodeID:    pr.GetNodeID(),
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		State:     PullRequestState(pr.GetState()),
		Merged:    pr.GetMerged(),
		Mergeable: pr.GetMergeable(),
		IsDraft:   pr.GetDraft(),
		User:      NewAccountFromREST(pr.GetUser(), repo),
		Head:      NewRefFromREST(pr.GetHead()),
		Base:      NewRefFromREST(pr.GetBase()),
		CreatedAt: pr.GetCreatedAt().Time,
		UpdatedAt: pr.GetUpdatedAt().Time,
		HTMLURL:   pr.GetHTMLURL(),
	}
	for _, l := range pr.Labels {
		out.Labels = append(out.Labels, l.GetName())
	}
	return out
}

// NewReviewedEventFromREST normalizes a REST review into the canonical
// timeline variant. Review comments are attached by the caller, which has
// the full comment set.
func NewReviewedEventFromREST(r *github.PullRequestReview, repo RepoContext) ReviewedEvent {
	return ReviewedEvent{
		ID:                r.GetID(),
		NodeID:            r.GetNodeID(),
		Author:            NewAccountFromREST(r.GetUser(), repo),
		Body:              r.GetBody(),
		State:             r.GetState(),
		SubmittedAt:       r.GetSubmittedAt().Time,
		HTMLURL:           r.GetHTMLURL(),
		AuthorAssociation: r.GetAuthorAssociation(),
	}
}

// RESTTimelineEntry is the wire shape of one REST timeline item. The
// snake_case fields come from the API; the camelCase compat fields mirror
// what the GraphQL timeline carries natively and are filled in by
// PatchRESTTimeline so both sources present the same minimal surface.
type RESTTimelineEntry struct {
	ID                   int64        `json:"id,omitempty"`
	NodeID               string       `json:"node_id,omitempty"`
	Event                string       `json:"event"`
	Actor                *github.User `json:"actor,omitempty"`
	CommitID             string       `json:"commit_id,omitempty"`
	Body                 string       `json:"body,omitempty"`
	State                string       `json:"state,omitempty"`
	CreatedAt            string       `json:"created_at,omitempty"`
	RawSubmittedAt       string       `json:"submitted_at,omitempty"`
	RawHTMLURL           string       `json:"html_url,omitempty"`
	RawAuthorAssociation string       `json:"author_association,omitempty"`

	SubmittedAt       string `json:"submittedAt,omitempty"`
	HTMLURL           string `json:"htmlUrl,omitempty"`
	AuthorAssociation string `json:"authorAssociation,omitempty"`
}

// PatchRESTTimeline fills the compat fields on each entry in place. It
// never touches the raw REST fields.
func PatchRESTTimeline(entries []*RESTTimelineEntry) {
	for _, e := range entries {
		if e == nil {
			continue
		}
		e.SubmittedAt = e.RawSubmittedAt
		e.HTMLURL = e.RawHTMLURL
		e.AuthorAssociation = e.RawAuthorAssociation
	}
}
