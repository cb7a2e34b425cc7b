package main

import (
	"fmt"

	"github.com/shurcooL/githubv4"
)

type gqlLabeledEvent struct {
	Actor gqlActor
	Label struct {
		Name githubv4.String
	}
	CreatedAt githubv4.DateTime
}

type gqlMilestonedEvent struct {
	Actor          gqlActor
	MilestoneTitle githubv4.String
	CreatedAt      githubv4.DateTime
}

type gqlAssignedEvent struct {
	Actor     gqlActor
	User      gqlActor
	CreatedAt githubv4.DateTime
}

type gqlMergedEvent struct {
	Actor  gqlActor
	Commit struct {
		OID githubv4.GitObjectID `graphql:"oid"`
		URL githubv4.URI
	}
	CreatedAt githubv4.DateTime
	URL       githubv4.URI
}

// gqlTimelineItem is the polymorphic timeline union, discriminated by
// __typename.
type gqlTimelineItem struct {
	Typename          string             `graphql:"__typename"`
	Commit            gqlCommit          `graphql:"... on Commit"`
	LabeledEvent      gqlLabeledEvent    `graphql:"... on LabeledEvent"`
	MilestonedEvent   gqlMilestonedEvent `graphql:"... on MilestonedEvent"`
	AssignedEvent     gqlAssignedEvent   `graphql:"... on AssignedEvent"`
	IssueComment      gqlIssueComment    `graphql:"... on IssueComment"`
	PullRequestReview gqlReview          `graphql:"... on PullRequestReview"`
	MergedEvent       gqlMergedEvent     `graphql:"... on MergedEvent"`
}

// NewTimelineEventFromGraphQL dispatches one timeline item to its
// canonical variant. Discriminators outside the table map to OtherEvent,
// never an error, so additive upstream event types degrade gracefully.
func NewTimelineEventFromGraphQL(item gqlTimelineItem, repo RepoContext) (TimelineEvent, error) {
	switch item.Typename {
	case "Commit":
		c := item.Commit
		author := NewAccountFromGraphQL(c.Author.User, repo)
		if author.Login == "" {
			// Commit signature with no linked account.
			author = Account{Login: string(c.Author.Name)}
		}
		return CommittedEvent{
			SHA:         string(c.OID),
			Author:      author,
			Message:     string(c.Message),
			CommittedAt: c.CommittedDate.Time,
			HTMLURL:     uriString(c.URL),
		}, nil
	case "LabeledEvent":
		e := item.LabeledEvent
		return LabeledEvent{
			Actor:     NewAccountFromGraphQL(e.Actor, repo),
			Label:     string(e.Label.Name),
			CreatedAt: e.CreatedAt.Time,
		}, nil
	case "MilestonedEvent":
		e := item.MilestonedEvent
		return MilestonedEvent{
			Actor:     NewAccountFromGraphQL(e.Actor, repo),
			Title:     string(e.MilestoneTitle),
			CreatedAt: e.CreatedAt.Time,
		}, nil
	case "AssignedEvent":
		e := item.AssignedEvent
		return AssignedEvent{
			Actor:     NewAccountFromGraphQL(e.Actor, repo),
			Assignee:  NewAccountFromGraphQL(e.User, repo),
			CreatedAt: e.CreatedAt.Time,
		}, nil
	case "IssueComment":
		comment, err := NewCommentFromGraphQLIssue(item.IssueComment, repo)
		if err != nil {
			return nil, err
		}
		return CommentedEvent{Comment: comment}, nil
	case "PullRequestReview":
		return newReviewedEvent(item.PullRequestReview, repo)
	case "MergedEvent":
		e := item.MergedEvent
		return MergedEvent{
			Actor:     NewAccountFromGraphQL(e.Actor, repo),
			SHA:       string(e.Commit.OID),
			CommitURL: uriString(e.Commit.URL),
			CreatedAt: e.CreatedAt.Time,
			HTMLURL:   uriString(e.URL),
		}, nil
	default:
		return OtherEvent{Typename: item.Typename}, nil
	}
}

// newReviewedEvent embeds only top-level review comments. Replies stay
// discoverable through InReplyToID against the full comment set.
func newReviewedEvent(r gqlReview, repo RepoContext) (TimelineEvent, error) {
	ev := ReviewedEvent{
		ID:                r.DatabaseID,
		NodeID:            idString(r.ID),
		Author:            NewAccountFromGraphQL(r.Author, repo),
		Body:              string(r.Body),
		State:             string(r.State),
		HTMLURL:           uriString(r.URL),
		AuthorAssociation: string(r.AuthorAssociation),
	}
	if r.SubmittedAt != nil {
		ev.SubmittedAt = r.SubmittedAt.Time
	}
	for _, node := range r.Comments.Nodes {
		comment, err := NewCommentFromGraphQL(node, repo)
		if err != nil {
			return nil, fmt.Errorf("review %d: %w", r.DatabaseID, err)
		}
		if comment.InReplyToID != 0 {
			continue
		}
		ev.Comments = append(ev.Comments, comment)
	}
	return ev, nil
}

// NewTimelineFromGraphQL normalizes the whole event sequence, preserving
// order and the position of unrecognized entries.
func NewTimelineFromGraphQL(items []gqlTimelineItem, repo RepoContext) ([]TimelineEvent, error) {
	events := make([]TimelineEvent, 0, len(items))
	for i, item := range items {
		ev, err := NewTimelineEventFromGraphQL(item, repo)
		if err != nil {
			return nil, fmt.Errorf("timeline item %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
