package main

import (
	"fmt"
	"time"
)

// Account represents a GitHub user or bot, independent of which API
// produced it.
type Account struct {
	Login      string `json:"login"`
	ProfileURL string `json:"profileUrl,omitempty"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
}

// Ref is a branch pointer on one side of a pull request.
type Ref struct {
	Label    string `json:"label"` // owner:branch
	Ref      string `json:"ref"`
	SHA      string `json:"sha"`
	CloneURL string `json:"cloneUrl"`
}

// RepoContext identifies the repository a payload came from. Avatar URLs
// are only exposed for github.com repositories.
type RepoContext struct {
	Owner    string
	Name     string
	IsDotCom bool
}

// Reaction is one displayed reaction summary entry on a comment.
type Reaction struct {
	Label            string `json:"label"` // glyph
	Icon             string `json:"icon"`  // resource path
	Count            int    `json:"count"`
	ViewerHasReacted bool   `json:"viewerHasReacted"`
}

// Comment is the canonical comment record. Review comments carry a file
// path and diff hunks; issue-level comments carry neither.
type Comment struct {
	ID                  int64      `json:"id"`
	NodeID              string     `json:"graphNodeId"`
	Body                string     `json:"body"`
	Author              Account    `json:"author"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	HTMLURL             string     `json:"htmlUrl,omitempty"`
	Path                string     `json:"path,omitempty"`
	DiffHunk            string     `json:"diffHunk,omitempty"`
	DiffHunks           []DiffHunk `json:"diffHunks,omitempty"`
	Position            int        `json:"position,omitempty"` // 0 when outdated
	OriginalPosition    int        `json:"originalPosition,omitempty"`
	CommitID            string     `json:"commitId,omitempty"`
	OriginalCommitID    string     `json:"originalCommitId,omitempty"`
	PullRequestReviewID int64      `json:"pullRequestReviewId,omitempty"`
	InReplyToID         int64      `json:"inReplyToId,omitempty"` // 0 = top-level
	IsDraft             bool       `json:"isDraft,omitempty"`
	CanEdit             bool       `json:"canEdit,omitempty"`
	CanDelete           bool       `json:"canDelete,omitempty"`
	Reactions           []Reaction `json:"reactions,omitempty"`
}

// PullRequestState is the open/closed state. Merged is tracked as a
// separate boolean, reconciled at normalization time.
type PullRequestState string

const (
	PullRequestOpen   PullRequestState = "open"
	PullRequestClosed PullRequestState = "closed"
)

// PullRequest is the canonical pull request record.
type PullRequest struct {
	ID        int64            `json:"id"`
	NodeID    string           `json:"graphNodeId"`
	Number    int              `json:"number"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	BodyHTML  string           `json:"bodyHtml,omitempty"`
	State     PullRequestState `json:"state"`
	Merged    bool             `json:"merged"`
	Mergeable bool             `json:"mergeable"`
	IsDraft   bool             `json:"isDraft"`
	User      Account          `json:"user"`
	Head      Ref              `json:"head"`
	Base      Ref              `json:"base"`
	Labels    []string         `json:"labels,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	HTMLURL   string           `json:"htmlUrl,omitempty"`
}

// EventType tags a timeline event variant.
type EventType string

const (
	EventCommitted  EventType = "committed"
	EventLabeled    EventType = "labeled"
	EventMilestoned EventType = "milestoned"
	EventAssigned   EventType = "assigned"
	EventCommented  EventType = "commented"
	EventReviewed   EventType = "reviewed"
	EventMerged     EventType = "merged"
	EventOther      EventType = "other"
)

// TimelineEvent is one entry in a pull request's activity feed.
type TimelineEvent interface {
	Type() EventType
}

// CommittedEvent is a commit pushed to the PR branch.
type CommittedEvent struct {
	SHA         string    `json:"sha"`
	Author      Account   `json:"author"`
	Message     string    `json:"message"`
	CommittedAt time.Time `json:"committedAt"`
	HTMLURL     string    `json:"htmlUrl,omitempty"`
}

// LabeledEvent records a label being added.
type LabeledEvent struct {
	Actor     Account   `json:"actor"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

// MilestonedEvent records the PR being added to a milestone.
type MilestonedEvent struct {
	Actor     Account   `json:"actor"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// AssignedEvent records an assignee being added.
type AssignedEvent struct {
	Actor     Account   `json:"actor"`
	Assignee  Account   `json:"assignee"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentedEvent wraps an issue-level comment on the PR.
type CommentedEvent struct {
	Comment Comment `json:"comment"`
}

// ReviewedEvent is a submitted (or pending) review. Comments holds only
// top-level review comments; replies are looked up through InReplyToID
// against the full comment set.
type ReviewedEvent struct {
	ID                int64     `json:"id"`
	NodeID            string    `json:"graphNodeId"`
	Author            Account   `json:"author"`
	Body              string    `json:"body"`
	State             string    `json:"state"`
	SubmittedAt       time.Time `json:"submittedAt"`
	HTMLURL           string    `json:"htmlUrl,omitempty"`
	AuthorAssociation string    `json:"authorAssociation,omitempty"`
	Comments          []Comment `json:"comments,omitempty"`
}

// MergedEvent records the PR being merged.
type MergedEvent struct {
	Actor     Account   `json:"actor"`
	SHA       string    `json:"sha"`
	CommitURL string    `json:"commitUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	HTMLURL   string    `json:"htmlUrl,omitempty"`
}

// OtherEvent preserves the position of an event type this tool does not
// understand. Renderers skip it.
type OtherEvent struct {
	Typename string `json:"typename"`
}

func (CommittedEvent) Type() EventType  { return EventCommitted }
func (LabeledEvent) Type() EventType    { return EventLabeled }
func (MilestonedEvent) Type() EventType { return EventMilestoned }
func (AssignedEvent) Type() EventType   { return EventAssigned }
func (CommentedEvent) Type() EventType  { return EventCommented }
func (ReviewedEvent) Type() EventType   { return EventReviewed }
func (MergedEvent) Type() EventType     { return EventMerged }
func (OtherEvent) Type() EventType      { return EventOther }

// ParseError reports a malformed diff hunk fragment.
type ParseError struct {
	Line int    // 1-based line within the fragment
	Text string // offending line
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed diff hunk at line %d: %q", e.Line, e.Text)
}

// LookupError reports a reaction content outside the supported set.
// Unknown reactions are a data-contract violation, not an ignorable event.
type LookupError struct {
	Content string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown reaction content %q", e.Content)
}
