package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-github/v74/github"
	"github.com/rs/zerolog"
	"github.com/shurcooL/githubv4"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

// GitHubClient wraps the GraphQL and REST clients for one host.
type GitHubClient struct {
	gql      *githubv4.Client
	rest     *github.Client
	host     string
	restOnly bool
	pageSize int
	log      zerolog.Logger
}

// NewGitHubClient creates a client pair for the configured host.
func NewGitHubClient(token string, cfg Config, log zerolog.Logger) (*GitHubClient, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), src)

	c := &GitHubClient{
		host:     cfg.Host,
		restOnly: cfg.RESTOnly,
		pageSize: cfg.PageSize,
		log:      log,
	}
	if cfg.IsDotCom() {
		c.gql = githubv4.NewClient(httpClient)
		c.rest = github.NewClient(httpClient)
		return c, nil
	}

	base := "https://" + cfg.Host
	rest, err := github.NewClient(httpClient).WithEnterpriseURLs(base+"/api/v3/", base+"/api/uploads/")
	if err != nil {
		return nil, fmt.Errorf("configuring enterprise REST client: %w", err)
	}
	c.rest = rest
	c.gql = githubv4.NewEnterpriseClient(base+"/api/graphql", httpClient)
	return c, nil
}

// SupportsGraphQL reports whether batched (multi-comment) reviews are
// available on this host.
func (c *GitHubClient) SupportsGraphQL() bool {
	return !c.restOnly
}

// RepoContext builds the normalization context for a repository on this
// client's host.
func (c *GitHubClient) RepoContext(owner, name string) RepoContext {
	return RepoContext{Owner: owner, Name: name, IsDotCom: c.host == "github.com"}
}

// getGitHubToken reads the token from GITHUB_TOKEN or the gh CLI's config
// and keyring.
func getGitHubToken(host string) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}

	hostsPath := filepath.Join(home, ".config", "gh", "hosts.yml")
	data, err := os.ReadFile(hostsPath)
	if err != nil {
		return "", fmt.Errorf("no GITHUB_TOKEN and could not read gh config: %w", err)
	}

	var hosts map[string]struct {
		User       string `yaml:"user"`
		OAuthToken string `yaml:"oauth_token"`
	}
	if err := yaml.Unmarshal(data, &hosts); err != nil {
		return "", fmt.Errorf("could not parse gh config: %w", err)
	}

	hostConfig, ok := hosts[host]
	if !ok {
		return "", fmt.Errorf("no config for %s in gh hosts.yml", host)
	}

	// Older gh versions keep the token in the config file itself.
	if hostConfig.OAuthToken != "" {
		return hostConfig.OAuthToken, nil
	}

	if hostConfig.User == "" {
		return "", fmt.Errorf("no user configured for %s in gh hosts.yml", host)
	}

	service := "gh:" + host
	token, err := keyring.Get(service, hostConfig.User)
	if err != nil {
		return "", fmt.Errorf("could not get token from keyring (service=%q, user=%q): %w", service, hostConfig.User, err)
	}

	return token, nil
}

// ReviewThread is one fetched thread: canonical comments plus the thread
// state the synchronizer options need.
type ReviewThread struct {
	Path       string    `json:"path"`
	Line       int       `json:"line"`
	IsResolved bool      `json:"isResolved"`
	IsOutdated bool      `json:"isOutdated"`
	Comments   []Comment `json:"comments"`
}

// FetchPullRequest fetches and normalizes a pull request over GraphQL.
func (c *GitHubClient) FetchPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	c.log.Debug().Str("repo", owner+"/"+repo).Int("number", number).Msg("fetching pull request")

	var q struct {
		Repository struct {
			PullRequest gqlPullRequest `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]interface{}{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(number),
	}
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("GraphQL query failed: %w", err)
	}

	pr := NewPullRequestFromGraphQL(q.Repository.PullRequest, c.RepoContext(owner, repo))
	return &pr, nil
}

// FetchPullRequestREST is the fallback path for hosts without GraphQL.
// It converges on the same canonical record as FetchPullRequest.
func (c *GitHubClient) FetchPullRequestREST(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	c.log.Debug().Str("repo", owner+"/"+repo).Int("number", number).Msg("fetching pull request over REST")

	raw, _, err := c.rest.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("REST fetch failed: %w", err)
	}
	pr := NewPullRequestFromREST(raw, c.RepoContext(owner, repo))
	return &pr, nil
}

// FetchTimeline fetches and normalizes the PR activity feed.
func (c *GitHubClient) FetchTimeline(ctx context.Context, owner, repo string, number int) ([]TimelineEvent, error) {
	c.log.Debug().Str("repo", owner+"/"+repo).Int("number", number).Msg("fetching timeline")

	var q struct {
		Repository struct {
			PullRequest struct {
				TimelineItems struct {
					Nodes []gqlTimelineItem
				} `graphql:"timelineItems(first: $pageSize)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]interface{}{
		"owner":    githubv4.String(owner),
		"name":     githubv4.String(repo),
		"number":   githubv4.Int(number),
		"pageSize": githubv4.Int(c.pageSize),
	}
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("GraphQL query failed: %w", err)
	}

	return NewTimelineFromGraphQL(q.Repository.PullRequest.TimelineItems.Nodes, c.RepoContext(owner, repo))
}

// FetchReviewThreads fetches review threads with normalized comments.
func (c *GitHubClient) FetchReviewThreads(ctx context.Context, owner, repo string, number int) ([]ReviewThread, error) {
	c.log.Debug().Str("repo", owner+"/"+repo).Int("number", number).Msg("fetching review threads")

	var q struct {
		Repository struct {
			PullRequest struct {
				ReviewThreads struct {
					Nodes []struct {
						IsResolved githubv4.Boolean
						IsOutdated githubv4.Boolean
						Path       githubv4.String
						Line       *githubv4.Int
						Comments   struct {
							Nodes []gqlReviewComment
						} `graphql:"comments(first: 100)"`
					}
				} `graphql:"reviewThreads(first: $pageSize)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]interface{}{
		"owner":    githubv4.String(owner),
		"name":     githubv4.String(repo),
		"number":   githubv4.Int(number),
		"pageSize": githubv4.Int(c.pageSize),
	}
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("GraphQL query failed: %w", err)
	}

	repoCtx := c.RepoContext(owner, repo)
	var threads []ReviewThread
	for _, t := range q.Repository.PullRequest.ReviewThreads.Nodes {
		thread := ReviewThread{
			Path:       string(t.Path),
			IsResolved: bool(t.IsResolved),
			IsOutdated: bool(t.IsOutdated),
		}
		if t.Line != nil {
			thread.Line = int(*t.Line)
		}
		for _, node := range t.Comments.Nodes {
			comment, err := NewCommentFromGraphQL(node, repoCtx)
			if err != nil {
				return nil, fmt.Errorf("thread %s:%d: %w", thread.Path, thread.Line, err)
			}
			thread.Comments = append(thread.Comments, comment)
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

// FetchReviewCommentsREST fetches and normalizes all review comments over
// REST, ungrouped. The REST API has no thread grouping; callers recover
// threads through InReplyToID chains.
func (c *GitHubClient) FetchReviewCommentsREST(ctx context.Context, owner, repo string, number int) ([]Comment, error) {
	c.log.Debug().Str("repo", owner+"/"+repo).Int("number", number).Msg("fetching review comments over REST")

	opts := &github.PullRequestListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: c.pageSize},
	}
	repoCtx := c.RepoContext(owner, repo)
	var comments []Comment
	for {
		raw, resp, err := c.rest.PullRequests.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("REST list comments failed: %w", err)
		}
		for _, rc := range raw {
			comment, err := NewCommentFromRESTReview(rc, repoCtx)
			if err != nil {
				return nil, err
			}
			comments = append(comments, comment)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return comments, nil
}
