package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"rsc.io/markdown"
)

var viewCmd = &cobra.Command{
	Use:   "view OWNER/REPO#NUMBER",
	Short: "Show a pull request and its timeline",
	Long: `Fetches a pull request and prints its summary and activity feed.

Uses GraphQL unless the configured host is REST-only, in which case the
timeline is unavailable and only the summary is shown.

Example:
  ghpr view golang/go#12345`,
	RunE: runView,
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	owner, repo, number, err := parsePRRef(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}

	var pr *PullRequest
	if client.SupportsGraphQL() {
		pr, err = client.FetchPullRequest(cmd.Context(), owner, repo, number)
	} else {
		pr, err = client.FetchPullRequestREST(cmd.Context(), owner, repo, number)
	}
	if err != nil {
		return fmt.Errorf("fetching PR: %w", err)
	}

	state := string(pr.State)
	if pr.Merged {
		state = "merged"
	}
	if pr.IsDraft {
		state += " (draft)"
	}
	fmt.Printf("#%d %s\n", pr.Number, pr.Title)
	fmt.Printf("%s · @%s · %s ← %s\n", state, pr.User.Login, pr.Base.Label, pr.Head.Label)
	if len(pr.Labels) > 0 {
		fmt.Printf("labels: %s\n", strings.Join(pr.Labels, ", "))
	}
	if pr.Body != "" {
		fmt.Println()
		fmt.Println(wrapBody(formatBody(pr.Body), cfg.WrapWidth))
	}

	if !client.SupportsGraphQL() {
		return nil
	}

	events, err := client.FetchTimeline(cmd.Context(), owner, repo, number)
	if err != nil {
		return fmt.Errorf("fetching timeline: %w", err)
	}
	fmt.Println()
	for _, ev := range events {
		if line := formatTimelineEvent(ev); line != "" {
			fmt.Println(line)
		}
	}
	return nil
}

// formatBody normalizes markdown for terminal output.
func formatBody(body string) string {
	p := markdown.Parser{}
	doc := p.Parse(body)
	return strings.TrimSuffix(markdown.Format(doc), "\n")
}

// wrapBody wraps prose lines at width. Fenced code blocks pass through
// untouched.
func wrapBody(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []string
	inFence := false
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if inFence || len(line) <= width {
			out = append(out, line)
			continue
		}
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{line}
	}
	var out []string
	current := words[0]
	for _, w := range words[1:] {
		if len(current)+1+len(w) > width {
			out = append(out, current)
			current = w
			continue
		}
		current += " " + w
	}
	return append(out, current)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// formatTimelineEvent renders one event, or "" for events to skip.
func formatTimelineEvent(ev TimelineEvent) string {
	switch e := ev.(type) {
	case CommittedEvent:
		return fmt.Sprintf("* %.7s %s (%s)", e.SHA, firstLine(e.Message), e.Author.Login)
	case LabeledEvent:
		return fmt.Sprintf("~ @%s added label %q", e.Actor.Login, e.Label)
	case MilestonedEvent:
		return fmt.Sprintf("~ @%s added to milestone %q", e.Actor.Login, e.Title)
	case AssignedEvent:
		return fmt.Sprintf("~ @%s assigned @%s", e.Actor.Login, e.Assignee.Login)
	case CommentedEvent:
		return fmt.Sprintf("@ @%s commented: %s", e.Comment.Author.Login, firstLine(e.Comment.Body))
	case ReviewedEvent:
		s := fmt.Sprintf("± @%s reviewed (%s)", e.Author.Login, strings.ToLower(e.State))
		if n := len(e.Comments); n > 0 {
			s += fmt.Sprintf(", %d comment(s)", n)
		}
		return s
	case MergedEvent:
		return fmt.Sprintf("✔ @%s merged %.7s", e.Actor.Login, e.SHA)
	default:
		// Unknown events are preserved positionally but never rendered.
		return ""
	}
}
