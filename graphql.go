package main

import (
	"fmt"
	"strings"

	"github.com/shurcooL/githubv4"
)

// GraphQL payload shapes shared between the client queries and the
// normalizers. Nullable objects are value structs checked by zero value,
// matching how the GraphQL client decodes null.

type gqlActor struct {
	Login     githubv4.String
	AvatarURL githubv4.URI `graphql:"avatarUrl"`
	URL       githubv4.URI `graphql:"url"`
}

type gqlRef struct {
	Name   githubv4.String
	Target struct {
		OID githubv4.GitObjectID `graphql:"oid"`
	}
	Repository struct {
		URL   githubv4.URI `graphql:"url"`
		Owner struct {
			Login githubv4.String
		}
	}
}

type gqlReactionGroup struct {
	Content          githubv4.String
	ViewerHasReacted githubv4.Boolean
	Users            struct {
		TotalCount githubv4.Int
	}
}

type gqlReviewComment struct {
	ID               githubv4.ID
	DatabaseID       int64
	Body             githubv4.String
	Author           gqlActor
	CreatedAt        githubv4.DateTime
	UpdatedAt        githubv4.DateTime
	URL              githubv4.URI
	Path             githubv4.String
	DiffHunk         githubv4.String
	Position         *githubv4.Int
	OriginalPosition githubv4.Int
	Commit           struct {
		OID githubv4.GitObjectID `graphql:"oid"`
	}
	OriginalCommit struct {
		OID githubv4.GitObjectID `graphql:"oid"`
	}
	State           githubv4.String
	ViewerCanDelete githubv4.Boolean
	ReplyTo         struct {
		DatabaseID int64
	}
	PullRequestReview struct {
		DatabaseID int64
	}
	ReactionGroups []gqlReactionGroup
}

type gqlIssueComment struct {
	ID              githubv4.ID
	DatabaseID      int64
	Body            githubv4.String
	Author          gqlActor
	CreatedAt       githubv4.DateTime
	UpdatedAt       githubv4.DateTime
	URL             githubv4.URI
	ViewerCanDelete githubv4.Boolean
	ReactionGroups  []gqlReactionGroup
}

type gqlReview struct {
	ID                githubv4.ID
	DatabaseID        int64
	Author            gqlActor
	Body              githubv4.String
	State             githubv4.String
	SubmittedAt       *githubv4.DateTime
	URL               githubv4.URI
	AuthorAssociation githubv4.String
	Comments          struct {
		Nodes []gqlReviewComment
	} `graphql:"comments(first: 100)"`
}

type gqlCommit struct {
	OID           githubv4.GitObjectID `graphql:"oid"`
	Message       githubv4.String
	URL           githubv4.URI
	CommittedDate githubv4.DateTime
	Author        struct {
		Name githubv4.String
		User gqlActor
	}
}

type gqlPullRequest struct {
	ID         githubv4.ID
	DatabaseID int64
	Number     githubv4.Int
	Title      githubv4.String
	Body       githubv4.String
	BodyHTML   githubv4.String
	State      githubv4.String
	Merged     githubv4.Boolean
	Mergeable  githubv4.String
	IsDraft    githubv4.Boolean
	Author     gqlActor
	BaseRef    gqlRef `graphql:"baseRef"`
	HeadRef    gqlRef `graphql:"headRef"`
	Labels     struct {
		Nodes []struct {
			Name githubv4.String
		}
	} `graphql:"labels(first: 100)"`
	CreatedAt githubv4.DateTime
	UpdatedAt githubv4.DateTime
	URL       githubv4.URI
}

func uriString(u githubv4.URI) string {
	if u.URL == nil {
		return ""
	}
	return u.String()
}

func idString(id githubv4.ID) string {
	if s, ok := id.(string); ok {
		return s
	}
	return ""
}

// NewAccountFromGraphQL normalizes a GraphQL actor. The avatar rule is the
// same as on the REST path.
func NewAccountFromGraphQL(a gqlActor, repo RepoContext) Account {
	out := Account{
		Login:      string(a.Login),
		ProfileURL: uriString(a.URL),
	}
	if repo.IsDotCom {
		out.AvatarURL = uriString(a.AvatarURL)
	}
	return out
}

// NewRefFromGraphQL normalizes a GraphQL ref to the same shape the REST
// path produces: composed owner:branch label, clone URL with .git suffix.
func NewRefFromGraphQL(r gqlRef) Ref {
	if r.Name == "" {
		return Ref{}
	}
	return Ref{
		Label:    string(r.Repository.Owner.Login) + ":" + string(r.Name),
		Ref:      string(r.Name),
		SHA:      string(r.Target.OID),
		CloneURL: uriString(r.Repository.URL) + ".git",
	}
}

func reactionsFromGroups(groups []gqlReactionGroup) ([]Reaction, error) {
	var counts []reactionCount
	for _, g := range groups {
		counts = append(counts, reactionCount{
			Content:          string(g.Content),
			Count:            int(g.Users.TotalCount),
			ViewerHasReacted: bool(g.ViewerHasReacted),
		})
	}
	return summarizeReactions(counts)
}

// NewCommentFromGraphQL normalizes a GraphQL review comment. IsDraft comes
// from the PENDING comment state; edit and delete are both keyed off
// viewerCanDelete, which is the one capability the API exposes here.
func NewCommentFromGraphQL(c gqlReviewComment, repo RepoContext) (Comment, error) {
	hunks, err := ParseDiffHunks(string(c.DiffHunk))
	if err != nil {
		return Comment{}, fmt.Errorf("comment %d: %w", c.DatabaseID, err)
	}
	reactions, err := reactionsFromGroups(c.ReactionGroups)
	if err != nil {
		return Comment{}, fmt.Errorf("comment %d: %w", c.DatabaseID, err)
	}
	out := Comment{
		ID:                  c.DatabaseID,
		NodeID:              idString(c.ID),
		Body:                string(c.Body),
		Author:              NewAccountFromGraphQL(c.Author, repo),
		CreatedAt:           c.CreatedAt.Time,
		UpdatedAt:           c.UpdatedAt.Time,
		HTMLURL:             uriString(c.URL),
		Path:                string(c.Path),
		DiffHunk:            string(c.DiffHunk),
		DiffHunks:           hunks,
		OriginalPosition:    int(c.OriginalPosition),
		CommitID:            string(c.Commit.OID),
		OriginalCommitID:    string(c.OriginalCommit.OID),
		PullRequestReviewID: c.PullRequestReview.DatabaseID,
		InReplyToID:         c.ReplyTo.DatabaseID,
		IsDraft:             string(c.State) == "PENDING",
		CanEdit:             bool(c.ViewerCanDelete),
		CanDelete:           bool(c.ViewerCanDelete),
		Reactions:           reactions,
	}
	if c.Position != nil {
		out.Position = int(*c.Position)
	}
	return out, nil
}

// NewCommentFromGraphQLIssue normalizes a GraphQL issue-level comment.
func NewCommentFromGraphQLIssue(c gqlIssueComment, repo RepoContext) (Comment, error) {
	reactions, err := reactionsFromGroups(c.ReactionGroups)
	if err != nil {
		return Comment{}, fmt.Errorf("comment %d: %w", c.DatabaseID, err)
	}
	return Comment{
		ID:        c.DatabaseID,
		NodeID:    idString(c.ID),
		Body:      string(c.Body),
		Author:    NewAccountFromGraphQL(c.Author, repo),
		CreatedAt: c.CreatedAt.Time,
		UpdatedAt: c.UpdatedAt.Time,
		HTMLURL:   uriString(c.URL),
		CanEdit:   bool(c.ViewerCanDelete),
		CanDelete: bool(c.ViewerCanDelete),
		Reactions: reactions,
	}, nil
}

// NewPullRequestFromGraphQL normalizes a GraphQL pull request. The MERGED
// state collapses to closed+merged; mergeable is true only for the exact
// MERGEABLE enum value, so UNKNOWN and CONFLICTING both read as false.
func NewPullRequestFromGraphQL(pr gqlPullRequest, repo RepoContext) PullRequest {
	state := PullRequestState(strings.ToLower(string(pr.State)))
	merged := bool(pr.Merged)
	if state == "merged" {
		state = PullRequestClosed
		merged = true
	}
	out := PullRequest{
		ID:        pr.DatabaseID,
		NodeID:    idString(pr.ID),
		Number:    int(pr.Number),
		Title:     string(pr.Title),
		Body:      string(pr.Body),
		BodyHTML:  string(pr.BodyHTML),
		State:     state,
		Merged:    merged,
		Mergeable: string(pr.Mergeable) == "MERGEABLE",
		IsDraft:   bool(pr.IsDraft),
		User:      NewAccountFromGraphQL(pr.Author, repo),
		Head:      NewRefFromGraphQL(pr.HeadRef),
		Base:      NewRefFromGraphQL(pr.BaseRef),
		CreatedAt: pr.CreatedAt.Time,
		UpdatedAt: pr.UpdatedAt.Time,
		HTMLURL:   uriString(pr.URL),
	}
	for _, l := range pr.Labels.Nodes {
		out.Labels = append(out.Labels, string(l.Name))
	}
	return out
}
