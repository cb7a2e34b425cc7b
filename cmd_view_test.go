package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapBody(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		width    int
		expected string
	}{
		{
			name:     "short line untouched",
			in:       "a short line",
			width:    20,
			expected: "a short line",
		},
		{
			name:     "long line wrapped at word boundary",
			in:       "one two three four",
			width:    9,
			expected: "one two\nthree\nfour",
		},
		{
			name:     "zero width disables wrapping",
			in:       "one two three four",
			width:    0,
			expected: "one two three four",
		},
		{
			name:     "fenced code passes through",
			in:       "```\nfunc veryLongFunctionNameThatExceedsWidth() {}\n```",
			width:    10,
			expected: "```\nfunc veryLongFunctionNameThatExceedsWidth() {}\n```",
		},
		{
			name:     "oversized single word kept whole",
			in:       "see https://github.com/octo/repo/pull/7#discussion_r101",
			width:    10,
			expected: "see\nhttps://github.com/octo/repo/pull/7#discussion_r101",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wrapBody(tt.in, tt.width))
		})
	}
}

func TestFormatTimelineEvent(t *testing.T) {
	alice := Account{Login: "alice"}

	tests := []struct {
		name     string
		ev       TimelineEvent
		expected string
	}{
		{
			name:     "commit",
			ev:       CommittedEvent{SHA: "abc123def456", Author: alice, Message: "Fix fetcher\n\nDetails."},
			expected: "* abc123d Fix fetcher (alice)",
		},
		{
			name:     "labeled",
			ev:       LabeledEvent{Actor: alice, Label: "bug"},
			expected: `~ @alice added label "bug"`,
		},
		{
			name:     "review with comments",
			ev:       ReviewedEvent{Author: alice, State: "APPROVED", Comments: []Comment{{}, {}}},
			expected: "± @alice reviewed (approved), 2 comment(s)",
		},
		{
			name:     "merged",
			ev:       MergedEvent{Actor: alice, SHA: "abc123def456"},
			expected: "✔ @alice merged abc123d",
		},
		{
			name:     "unknown skipped",
			ev:       OtherEvent{Typename: "CrossReferencedEvent"},
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatTimelineEvent(tt.ev))
		})
	}
}
