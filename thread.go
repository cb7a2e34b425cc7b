package main

import (
	"strings"

	"github.com/rs/zerolog"
)

// ThreadState is the lifecycle state of a synchronized thread.
type ThreadState int

const (
	ThreadFresh ThreadState = iota
	ThreadLive
	ThreadStaleAfterDraftToggle
	ThreadDisposed
)

const (
	noParticipantsLabel = "Start discussion"
	pendingLabel        = "Pending"
)

// Command describes an action the UI can offer on a thread or a comment.
type Command struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

var (
	cmdEditComment      = Command{ID: "review.editComment", Title: "Edit"}
	cmdDeleteComment    = Command{ID: "review.deleteComment", Title: "Delete"}
	cmdReply            = Command{ID: "review.reply", Title: "Reply"}
	cmdAddReviewComment = Command{ID: "review.addReviewComment", Title: "Add review comment"}
	cmdAddSingleComment = Command{ID: "review.addSingleComment", Title: "Add comment"}
	cmdStartReview      = Command{ID: "review.startReview", Title: "Start review"}
	cmdFinishReview     = Command{ID: "review.finishReview", Title: "Finish review"}
	cmdDeleteReview     = Command{ID: "review.deleteReview", Title: "Delete review"}
)

// CommentView is the desired UI state of one comment.
type CommentView struct {
	CommentID int64      `json:"commentId"`
	Author    string     `json:"author"`
	Body      string     `json:"body"`
	Label     string     `json:"label,omitempty"` // Pending while in a draft review
	Actions   []Command  `json:"actions,omitempty"`
	Reactions []Reaction `json:"reactions,omitempty"`
}

// ThreadView is the desired UI state of a whole thread. The synchronizer
// produces it; a thin adapter writes it onto the real editor object.
type ThreadView struct {
	Label              string        `json:"label"`
	Comments           []CommentView `json:"comments"`
	AcceptInputCommand Command       `json:"acceptInputCommand"`
	AdditionalCommands []Command     `json:"additionalCommands,omitempty"`
	Collapsed          bool          `json:"collapsed"`
}

// ThreadHandle is the editor-owned live object. The synchronizer never
// constructs one; it receives it and pushes ThreadViews at it.
type ThreadHandle interface {
	Apply(ThreadView)
	Dispose()
}

// ThreadOptions captures the per-thread context the command derivation
// depends on.
type ThreadOptions struct {
	SupportsGraphQL bool // host supports batched (multi-comment) reviews
	InDraftReview   bool // viewer has a pending review on this PR
	Resolved        bool
}

// ThreadSynchronizer keeps one editor comment thread consistent with the
// canonical model. Operations are invoked sequentially; updates racing a
// dispose or a newer state are ordered out by generation, not by arrival.
type ThreadSynchronizer struct {
	log        zerolog.Logger
	handle     ThreadHandle
	opts       ThreadOptions
	comments   []Comment
	state      ThreadState
	generation uint64
}

func NewThreadSynchronizer(log zerolog.Logger, handle ThreadHandle, opts ThreadOptions) *ThreadSynchronizer {
	return &ThreadSynchronizer{log: log, handle: handle, opts: opts, state: ThreadFresh}
}

// Create binds the canonical comment list to the handle and renders the
// first view. An empty list still renders, with the placeholder label.
func (s *ThreadSynchronizer) Create(comments []Comment) {
	if s.state == ThreadDisposed {
		s.log.Debug().Msg("create on disposed thread ignored")
		return
	}
	s.comments = append([]Comment(nil), comments...)
	s.state = ThreadLive
	s.apply()
}

// State returns the current lifecycle state.
func (s *ThreadSynchronizer) State() ThreadState { return s.state }

// Generation returns the marker a caller must snapshot before suspending;
// a completed fetch presents it back to UpdateComments.
func (s *ThreadSynchronizer) Generation() uint64 { return s.generation }

// UpdateComments replaces the comment set with a fetched snapshot. The
// snapshot only wins if nothing changed since gen was taken; stale or
// post-dispose deliveries are dropped silently.
func (s *ThreadSynchronizer) UpdateComments(gen uint64, comments []Comment) {
	if s.state == ThreadDisposed || gen != s.generation {
		s.log.Debug().Uint64("at", gen).Uint64("current", s.generation).Msg("dropping stale thread update")
		return
	}
	s.comments = append([]Comment(nil), comments...)
	s.apply()
}

// UpdateLabel recomputes the participant label from the current comment
// set. Invoked after any comment add, edit, delete or reply.
func (s *ThreadSynchronizer) UpdateLabel() {
	if s.state != ThreadLive {
		return
	}
	s.apply()
}

// UpdateReactions replaces one comment's reaction summary wholesale.
func (s *ThreadSynchronizer) UpdateReactions(commentID int64, reactions []Reaction) {
	if s.state == ThreadDisposed {
		s.log.Debug().Int64("comment", commentID).Msg("dropping reaction update on disposed thread")
		return
	}
	for i := range s.comments {
		if s.comments[i].ID == commentID {
			s.comments[i].Reactions = append([]Reaction(nil), reactions...)
			s.apply()
			return
		}
	}
	s.log.Debug().Int64("comment", commentID).Msg("reaction update for unknown comment")
}

// ExitDraftMode publishes every draft comment: drafts lose their flag and
// Pending label in one rewrite, so no partial update is observable. A
// second call is a no-op.
func (s *ThreadSynchronizer) ExitDraftMode() {
	if s.state != ThreadLive {
		return
	}
	anyDraft := false
	for _, c := range s.comments {
		if c.IsDraft {
			anyDraft = true
			break
		}
	}
	s.opts.InDraftReview = false
	if !anyDraft {
		return
	}
	s.state = ThreadStaleAfterDraftToggle
	for i := range s.comments {
		s.comments[i].IsDraft = false
	}
	s.state = ThreadLive
	s.apply()
}

// Dispose releases the handle. Terminal; in-flight callbacks for this
// thread become no-ops.
func (s *ThreadSynchronizer) Dispose() {
	if s.state == ThreadDisposed {
		return
	}
	s.state = ThreadDisposed
	s.handle.Dispose()
}

func (s *ThreadSynchronizer) apply() {
	s.generation++
	s.handle.Apply(s.View())
}

// View derives the desired UI state from the current comment set.
func (s *ThreadSynchronizer) View() ThreadView {
	anyDraft := false
	views := make([]CommentView, 0, len(s.comments))
	for _, c := range s.comments {
		cv := CommentView{
			CommentID: c.ID,
			Author:    c.Author.Login,
			Body:      c.Body,
			Reactions: c.Reactions,
		}
		if c.IsDraft {
			cv.Label = pendingLabel
			anyDraft = true
		}
		// Affordances are strictly capability-gated.
		if c.CanEdit {
			cv.Actions = append(cv.Actions, cmdEditComment)
		}
		if c.CanDelete {
			cv.Actions = append(cv.Actions, cmdDeleteComment)
		}
		views = append(views, cv)
	}

	accept, additional := threadCommands(s.opts, anyDraft)
	return ThreadView{
		Label:              participantsLabel(s.comments),
		Comments:           views,
		AcceptInputCommand: accept,
		AdditionalCommands: additional,
		Collapsed:          s.opts.Resolved && !anyDraft,
	}
}

// participantsLabel lists participants by first appearance, deduplicated
// by login.
func participantsLabel(comments []Comment) string {
	var names []string
	seen := make(map[string]bool)
	for _, c := range comments {
		login := c.Author.Login
		if login == "" || seen[login] {
			continue
		}
		seen[login] = true
		names = append(names, "@"+login)
	}
	if len(names) == 0 {
		return noParticipantsLabel
	}
	return "Participants: " + strings.Join(names, ", ")
}

// threadCommands derives the thread's primary and follow-up actions.
// Batched reviews need GraphQL; without it the only offer is a plain
// reply.
func threadCommands(opts ThreadOptions, anyDraft bool) (Command, []Command) {
	if !opts.SupportsGraphQL {
		return cmdReply, nil
	}
	if opts.InDraftReview || anyDraft {
		return cmdAddReviewComment, []Command{cmdFinishReview, cmdDeleteReview}
	}
	return cmdAddSingleComment, []Command{cmdStartReview}
}
