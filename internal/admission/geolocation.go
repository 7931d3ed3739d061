package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// geoFieldMask requests only status and countryCode from the provider.
	geoFieldMask = "16386"

	geoStatusFail = "fail"
)

// GeoResult is the provider's answer for one IP address.
type GeoResult struct {
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
}

// GeoClient resolves an IP address to a country code via an ip-api.com
// compatible endpoint.
type GeoClient struct {
	client *resty.Client
}

func NewGeoClient(baseURL string, timeout time.Duration) *GeoClient {
	return &GeoClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

func (c *GeoClient) Lookup(ctx context.Context, ip string) (*GeoResult, error) {
	var result GeoResult
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("fields", geoFieldMask).
		SetResult(&result).
		Get("/json/" + ip)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geolocation service returned %s", resp.Status())
	}
	return &result, nil
}
