package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var threadsCmd = &cobra.Command{
	Use:   "threads OWNER/REPO#NUMBER",
	Short: "Show review threads as the editor would render them",
	Long: `Fetches a pull request's review threads and runs each through the
thread-view synchronizer, printing the synchronized state: participant
labels, pending markers, reactions, and the actions each comment offers.

Example:
  ghpr threads golang/go#12345`,
	RunE: runThreads,
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(threadsCmd)
}

// consoleThread is the terminal stand-in for an editor comment thread.
type consoleThread struct {
	view    ThreadView
	applied bool
}

func (h *consoleThread) Apply(v ThreadView) {
	h.view = v
	h.applied = true
}

func (h *consoleThread) Dispose() {}

func runThreads(cmd *cobra.Command, args []string) error {
	owner, repo, number, err := parsePRRef(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}

	var threads []ReviewThread
	if client.SupportsGraphQL() {
		threads, err = client.FetchReviewThreads(cmd.Context(), owner, repo, number)
	} else {
		var comments []Comment
		comments, err = client.FetchReviewCommentsREST(cmd.Context(), owner, repo, number)
		if err == nil {
			threads = groupRESTThreads(comments)
		}
	}
	if err != nil {
		return fmt.Errorf("fetching threads: %w", err)
	}

	if len(threads) == 0 {
		fmt.Println("no review threads")
		return nil
	}

	for i, t := range threads {
		handle := &consoleThread{}
		sync := NewThreadSynchronizer(logger, handle, ThreadOptions{
			SupportsGraphQL: client.SupportsGraphQL(),
			InDraftReview:   anyDraft(t.Comments),
			Resolved:        t.IsResolved,
		})
		sync.Create(t.Comments)
		if i > 0 {
			fmt.Println()
		}
		printThread(t, handle.view)
	}
	return nil
}

func anyDraft(comments []Comment) bool {
	for _, c := range comments {
		if c.IsDraft {
			return true
		}
	}
	return false
}

// groupRESTThreads recovers thread grouping from the flat REST comment
// list: a comment with no InReplyToID roots a thread, replies attach to
// their root's thread.
func groupRESTThreads(comments []Comment) []ReviewThread {
	var threads []ReviewThread
	threadByRoot := make(map[int64]int)
	for _, c := range comments {
		if c.InReplyToID == 0 {
			threadByRoot[c.ID] = len(threads)
			threads = append(threads, ReviewThread{
				Path:     c.Path,
				Comments: []Comment{c},
			})
			continue
		}
		if idx, ok := threadByRoot[c.InReplyToID]; ok {
			threads[idx].Comments = append(threads[idx].Comments, c)
		}
	}
	return threads
}

func printThread(t ReviewThread, view ThreadView) {
	loc := t.Path
	if t.Line > 0 {
		loc = fmt.Sprintf("%s:%d", t.Path, t.Line)
	}
	var markers []string
	if t.IsResolved {
		markers = append(markers, "resolved")
	}
	if t.IsOutdated {
		markers = append(markers, "outdated")
	}
	if len(markers) > 0 {
		loc += " (" + strings.Join(markers, ", ") + ")"
	}
	fmt.Println(loc)
	fmt.Printf("  %s\n", view.Label)

	for _, cv := range view.Comments {
		line := "  @" + cv.Author
		if cv.Label != "" {
			line += " [" + cv.Label + "]"
		}
		fmt.Println(line)
		for _, bodyLine := range strings.Split(formatBody(cv.Body), "\n") {
			fmt.Printf("    %s\n", bodyLine)
		}
		if len(cv.Reactions) > 0 {
			var parts []string
			for _, r := range cv.Reactions {
				parts = append(parts, fmt.Sprintf("%s %d", r.Label, r.Count))
			}
			fmt.Printf("    %s\n", strings.Join(parts, "  "))
		}
		if len(cv.Actions) > 0 {
			var titles []string
			for _, a := range cv.Actions {
				titles = append(titles, a.Title)
			}
			fmt.Printf("    actions: %s\n", strings.Join(titles, ", "))
		}
	}

	actions := []string{view.AcceptInputCommand.Title}
	for _, c := range view.AdditionalCommands {
		actions = append(actions, c.Title)
	}
	fmt.Printf("  > %s\n", strings.Join(actions, " | "))
}
