package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var debugFetchCmd = &cobra.Command{
	Use:   "debugfetch OWNER/REPO#NUMBER",
	Short: "Fetch normalized PR state and output as JSON",
	Long:  `Low-level command to fetch a pull request, its review threads, and its timeline, then dump the normalized model as JSON.`,
	RunE:  runDebugFetch,
	Args:  cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(debugFetchCmd)
}

// taggedEvent wraps a timeline event with its variant tag for JSON output.
type taggedEvent struct {
	Type  EventType     `json:"type"`
	Event TimelineEvent `json:"event"`
}

func runDebugFetch(cmd *cobra.Command, args []string) error {
	owner, repo, number, err := parsePRRef(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}

	pr, err := client.FetchPullRequest(cmd.Context(), owner, repo, number)
	if err != nil {
		return fmt.Errorf("fetching PR: %w", err)
	}
	threads, err := client.FetchReviewThreads(cmd.Context(), owner, repo, number)
	if err != nil {
		return fmt.Errorf("fetching threads: %w", err)
	}
	events, err := client.FetchTimeline(cmd.Context(), owner, repo, number)
	if err != nil {
		return fmt.Errorf("fetching timeline: %w", err)
	}

	tagged := make([]taggedEvent, 0, len(events))
	for _, ev := range events {
		tagged = append(tagged, taggedEvent{Type: ev.Type(), Event: ev})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		PullRequest *PullRequest   `json:"pullRequest"`
		Threads     []ReviewThread `json:"threads"`
		Timeline    []taggedEvent  `json:"timeline"`
	}{pr, threads, tagged})
}
