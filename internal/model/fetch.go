// Package model defines shared types for the service.
package model

import "time"

// FetchResult is a fully read and parsed upstream response.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	Bytes       int
	Duration    time.Duration
	Payload     any
}

// FailureKind classifies why an upstream fetch did not produce a payload.
type FailureKind string

const (
	FailureNetwork  FailureKind = "network"
	FailureTimeout  FailureKind = "timeout"
	FailureStatus   FailureKind = "status"
	FailureParse    FailureKind = "parse"
	FailureCanceled FailureKind = "canceled"
)
