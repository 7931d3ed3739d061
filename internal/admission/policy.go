package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// policyAllowSignal is the exact decision value the permission service
// returns for an allowed country. Opaque contract; do not normalize.
const policyAllowSignal = "sure, why not!"

type policyResponse struct {
	Ads string `json:"ads"`
}

// PolicyClient asks the external permission endpoint whether ads events may
// be created from a country.
type PolicyClient struct {
	client   *resty.Client
	url      string
	username string
	password string
}

func NewPolicyClient(url, username, password string, timeout time.Duration) *PolicyClient {
	return &PolicyClient{
		client:   resty.New().SetTimeout(timeout),
		url:      url,
		username: username,
		password: password,
	}
}

// CountryAllowed never allows when the endpoint is unconfigured.
func (c *PolicyClient) CountryAllowed(ctx context.Context, countryCode string) (bool, error) {
	if c.url == "" {
		return false, nil
	}

	var result policyResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("countryCode", countryCode).
		SetBasicAuth(c.username, c.password).
		SetResult(&result).
		Get(c.url)
	if err != nil {
		return false, err
	}
	if resp.IsError() {
		return false, fmt.Errorf("permission service returned %s", resp.Status())
	}

	return result.Ads == policyAllowSignal, nil
}
