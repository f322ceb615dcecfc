// Package github wraps the GitHub API operations the action performs.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v72/github"
	"golang.org/x/oauth2"
)

// ClientOptions configures NewClient
type ClientOptions struct {
	Token string
	// APIURL is the REST API root. Empty, or the public API root, selects github.com.
	APIURL string
	// Base is the transport that authenticated requests are sent through. Nil selects the client found in ctx, if any, as
	// oauth2.NewClient does.
	Base http.RoundTripper
}

// NewClient creates a GitHub client authenticated with a static token
func NewClient(ctx context.Context, opts ClientOptions) (*github.Client, error) {
	tokenSource := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: opts.Token},
	)
	httpClient := oauth2.NewClient(ctx, tokenSource)
	if opts.Base != nil {
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Source: oauth2.ReuseTokenSource(nil, tokenSource),
				Base:   opts.Base,
			},
		}
	}
	client := github.NewClient(httpClient)

	apiURL := strings.TrimSuffix(opts.APIURL, "/")
	if apiURL == "" || apiURL == strings.TrimSuffix(client.BaseURL.String(), "/") {
		return client, nil
	}

	client, err := client.WithEnterpriseURLs(apiURL, apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure GitHub API URL '%s': %w", opts.APIURL, err)
	}
	return client, nil
}
