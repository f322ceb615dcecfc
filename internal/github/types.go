package github

import "fmt"

// GitHubIssue identifies an issue in a repository
type GitHubIssue struct {
	Owner  string
	Repo   string
	Number int

	Title  string
	URL    string
	Author string
}

func (i GitHubIssue) String() string {
	return fmt.Sprintf("%s/%s#%d", i.Owner, i.Repo, i.Number)
}

// GitHubPullRequest identifies a pull request in a repository
type GitHubPullRequest struct {
	Owner  string
	Repo   string
	Number int

	Title   string
	URL     string
	Author  string
	HeadSHA string
}

func (pr GitHubPullRequest) String() string {
	return fmt.Sprintf("%s/%s#%d", pr.Owner, pr.Repo, pr.Number)
}
