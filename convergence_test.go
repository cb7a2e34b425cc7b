package main

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-github/v74/github"
	"github.com/shurcooL/githubv4"
)

// The REST and GraphQL normalizers must converge on field-for-field equal
// canonical records for the same underlying entity.

var testTime = time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)

func testURI(t *testing.T, s string) githubv4.URI {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("bad test URL %q: %v", s, err)
	}
	return githubv4.URI{URL: u}
}

func dotComContext() RepoContext {
	return RepoContext{Owner: "octo", Name: "repo", IsDotCom: true}
}

func restAlice() *github.User {
	return &github.User{
		Login:     github.Ptr("alice"),
		HTMLURL:   github.Ptr("https://github.com/alice"),
		AvatarURL: github.Ptr("https://avatars.githubusercontent.com/u/1"),
	}
}

func gqlAlice(t *testing.T) gqlActor {
	return gqlActor{
		Login:     "alice",
		URL:       testURI(t, "https://github.com/alice"),
		AvatarURL: testURI(t, "https://avatars.githubusercontent.com/u/1"),
	}
}

func TestAccountConvergence(t *testing.T) {
	rest := NewAccountFromREST(restAlice(), dotComContext())
	gql := NewAccountFromGraphQL(gqlAlice(t), dotComContext())
	if diff := cmp.Diff(rest, gql); diff != "" {
		t.Errorf("Accounts diverge (-rest +graphql):\n%s", diff)
	}
}

func TestAccountAvatarSuppression(t *testing.T) {
	enterprise := RepoContext{Owner: "octo", Name: "repo", IsDotCom: false}

	rest := NewAccountFromREST(restAlice(), enterprise)
	if rest.AvatarURL != "" {
		t.Errorf("REST avatar should be suppressed off github.com, got %q", rest.AvatarURL)
	}
	gql := NewAccountFromGraphQL(gqlAlice(t), enterprise)
	if gql.AvatarURL != "" {
		t.Errorf("GraphQL avatar should be suppressed off github.com, got %q", gql.AvatarURL)
	}
	if diff := cmp.Diff(rest, gql); diff != "" {
		t.Errorf("Accounts diverge (-rest +graphql):\n%s", diff)
	}
}

func TestRefConvergence(t *testing.T) {
	rest := NewRefFromREST(&github.PullRequestBranch{
		Label: github.Ptr("octo:feature"),
		Ref:   github.Ptr("feature"),
		SHA:   github.Ptr("abc123def456"),
		Repo:  &github.Repository{CloneURL: github.Ptr("https://github.com/octo/repo.git")},
	})

	g := gqlRef{Name: "feature"}
	g.Target.OID = "abc123def456"
	g.Repository.URL = testURI(t, "https://github.com/octo/repo")
	g.Repository.Owner.Login = "octo"
	gql := NewRefFromGraphQL(g)

	if diff := cmp.Diff(rest, gql); diff != "" {
		t.Errorf("Refs diverge (-rest +graphql):\n%s", diff)
	}
}

func TestCommentConvergence(t *testing.T) {
	rest, err := NewCommentFromRESTReview(&github.PullRequestComment{
		ID:                  github.Ptr(int64(101)),
		NodeID:              github.Ptr("PRRC_node101"),
		Body:                github.Ptr("needs a nil guard"),
		User:                restAlice(),
		CreatedAt:           &github.Timestamp{Time: testTime},
		UpdatedAt:           &github.Timestamp{Time: testTime},
		HTMLURL:             github.Ptr("https://github.com/octo/repo/pull/7#discussion_r101"),
		Path:                github.Ptr("pkg/server.go"),
		DiffHunk:            github.Ptr(sampleHunk),
		Position:            github.Ptr(3),
		OriginalPosition:    github.Ptr(3),
		CommitID:            github.Ptr("abc123"),
		OriginalCommitID:    github.Ptr("abc123"),
		PullRequestReviewID: github.Ptr(int64(900)),
	}, dotComContext())
	if err != nil {
		t.Fatalf("REST normalization failed: %v", err)
	}

	pos := githubv4.Int(3)
	g := gqlReviewComment{
		ID:               githubv4.ID("PRRC_node101"),
		DatabaseID:       101,
		Body:             "needs a nil guard",
		Author:           gqlAlice(t),
		CreatedAt:        githubv4.DateTime{Time: testTime},
		UpdatedAt:        githubv4.DateTime{Time: testTime},
		URL:              testURI(t, "https://github.com/octo/repo/pull/7#discussion_r101"),
		Path:             "pkg/server.go",
		DiffHunk:         sampleHunk,
		Position:         &pos,
		OriginalPosition: 3,
		State:            "SUBMITTED",
	}
	g.Commit.OID = "abc123"
	g.OriginalCommit.OID = "abc123"
	g.PullRequestReview.DatabaseID = 900

	gql, err := NewCommentFromGraphQL(g, dotComContext())
	if err != nil {
		t.Fatalf("GraphQL normalization failed: %v", err)
	}

	if diff := cmp.Diff(rest, gql); diff != "" {
		t.Errorf("Comments diverge (-rest +graphql):\n%s", diff)
	}
}

func TestCommentNormalization_BadHunkFailsWhole(t *testing.T) {
	_, err := NewCommentFromRESTReview(&github.PullRequestComment{
		ID:       github.Ptr(int64(5)),
		DiffHunk: github.Ptr("@@ broken @@\n x"),
	}, dotComContext())
	if err == nil {
		t.Fatal("A comment with an unparsable hunk must fail normalization")
	}
}

func TestCommentNormalization_GraphQLDraftAndCapabilities(t *testing.T) {
	g := gqlReviewComment{DatabaseID: 7, State: "PENDING", ViewerCanDelete: true}
	c, err := NewCommentFromGraphQL(g, dotComContext())
	if err != nil {
		t.Fatalf("normalization failed: %v", err)
	}
	if !c.IsDraft {
		t.Error("PENDING state should mark the comment as draft")
	}
	// Edit and delete share the one capability the API exposes.
	if !c.CanEdit || !c.CanDelete {
		t.Error("viewerCanDelete should grant both edit and delete")
	}
}

func restPRFixture() *github.PullRequest {
	return &github.PullRequest{
		ID:        github.Ptr(int64(4242)),
		NodeID:    github.Ptr("PR_node4242"),
		Number:    github.Ptr(7),
		Title:     github.Ptr("Add retry to fetcher"),
		Body:      github.Ptr("Retries transient fetch failures."),
		State:     github.Ptr("open"),
		Merged:    github.Ptr(false),
		Mergeable: github.Ptr(true),
		Draft:     github.Ptr(false),
		User:      restAlice(),
		Head: &github.PullRequestBranch{
			Label: github.Ptr("octo:feature"),
			Ref:   github.Ptr("feature"),
			SHA:   github.Ptr("abc123def456"),
			Repo:  &github.Repository{CloneURL: github.Ptr("https://github.com/octo/repo.git")},
		},
		Base: &github.PullRequestBranch{
			Label: github.Ptr("octo:main"),
			Ref:   github.Ptr("main"),
			SHA:   github.Ptr("fed654cba321"),
			Repo:  &github.Repository{CloneURL: github.Ptr("https://github.com/octo/repo.git")},
		},
		Labels:    []*github.Label{{Name: github.Ptr("bug")}},
		CreatedAt: &github.Timestamp{Time: testTime},
		UpdatedAt: &github.Timestamp{Time: testTime},
		HTMLURL:   github.Ptr("https://github.com/octo/repo/pull/7"),
	}
}

func TestPullRequestConvergence(t *testing.T) {
	rest := NewPullRequestFromREST(restPRFixture(), dotComContext())

	g := gqlPullRequest{
		ID:         githubv4.ID("PR_node4242"),
		DatabaseID: 4242,
		Number:     7,
		Title:      "Add retry to fetcher",
		Body:       "Retries transient fetch failures.",
		State:      "OPEN",
		Merged:     false,
		Mergeable:  "MERGEABLE",
		IsDraft:    false,
		Author:     gqlAlice(t),
		CreatedAt:  githubv4.DateTime{Time: testTime},
		UpdatedAt:  githubv4.DateTime{Time: testTime},
		URL:        testURI(t, "https://github.com/octo/repo/pull/7"),
	}
	g.HeadRef = gqlRef{Name: "feature"}
	g.HeadRef.Target.OID = "abc123def456"
	g.HeadRef.Repository.URL = testURI(t, "https://github.com/octo/repo")
	g.HeadRef.Repository.Owner.Login = "octo"
	g.BaseRef = gqlRef{Name: "main"}
	g.BaseRef.Target.OID = "fed654cba321"
	g.BaseRef.Repository.URL = testURI(t, "https://github.com/octo/repo")
	g.BaseRef.Repository.Owner.Login = "octo"
	g.Labels.Nodes = []struct{ Name githubv4.String }{{Name: "bug"}}

	gql := NewPullRequestFromGraphQL(g, dotComContext())

	if diff := cmp.Diff(rest, gql); diff != "" {
		t.Errorf("Pull requests diverge (-rest +graphql):\n%s", diff)
	}
}

func TestPullRequestMergeableCollapse(t *testing.T) {
	for _, state := range []string{"UNKNOWN", "CONFLICTING"} {
		pr := NewPullRequestFromGraphQL(gqlPullRequest{Mergeable: githubv4.String(state)}, dotComContext())
		if pr.Mergeable {
			t.Errorf("Mergeable %s should normalize to false", state)
		}
	}
	pr := NewPullRequestFromGraphQL(gqlPullRequest{Mergeable: "MERGEABLE"}, dotComContext())
	if !pr.Mergeable {
		t.Error("Mergeable MERGEABLE should normalize to true")
	}
}

func TestPullRequestMergedStateReconciled(t *testing.T) {
	pr := NewPullRequestFromGraphQL(gqlPullRequest{State: "MERGED"}, dotComContext())
	if pr.State != PullRequestClosed || !pr.Merged {
		t.Errorf("MERGED should collapse to closed+merged, got state=%s merged=%v", pr.State, pr.Merged)
	}
}

func TestPullRequestListResponseNeverMerged(t *testing.T) {
	// List responses omit merged; even a closed PR reads as unmerged
	// until the full record is fetched.
	listed := &github.PullRequest{
		Number: github.Ptr(7),
		State:  github.Ptr("closed"),
	}
	pr := NewPullRequestFromREST(listed, dotComContext())
	if pr.Merged {
		t.Error("List-derived PR must normalize to merged=false")
	}
	if pr.State != PullRequestClosed {
		t.Errorf("Expected closed state, got %s", pr.State)
	}
}
