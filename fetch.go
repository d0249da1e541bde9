package main

import (
	"fmt"
	"time"

	"github.com/imroc/req/v3"
	log "github.com/sirupsen/logrus"
)

// FetchRegistry downloads a raw vendor registry.
func FetchRegistry(url string) ([]byte, error) {
	log.Debugf("Downloading registry from %s.", url)
	client := req.C().
		SetTimeout(2 * time.Minute).
		SetUserAgent(serviceName + "/" + serviceVersion)

	resp, err := client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch registry: %w", err)
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("fetch registry: unexpected status %s", resp.Status)
	}
	return resp.Bytes(), nil
}
