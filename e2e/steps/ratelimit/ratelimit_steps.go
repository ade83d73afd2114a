package ratelimit

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Request(ctx context.Context, method, path string, body any) error
	LastStatus() int
	LastHeader(k string) string
}

// RegisterSteps registers rate-limiting step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I send (\d+) requests to "([^"]*)"$`, steps.sendRequests)
	ctx.Step(`^at least one request should be rejected with (\d+)$`, steps.atLeastOneRejected)
	ctx.Step(`^the rejection should carry a "Retry-After" header$`, steps.rejectionHasRetryAfter)
}

type ratelimitSteps struct {
	tc         TestContext
	statuses   []int
	retryAfter string
}

func (s *ratelimitSteps) sendRequests(ctx context.Context, n int, path string) error {
	s.statuses = s.statuses[:0]
	s.retryAfter = ""
	for range n {
		if err := s.tc.Request(ctx, http.MethodGet, path, nil); err != nil {
			return err
		}
		status := s.tc.LastStatus()
		s.statuses = append(s.statuses, status)
		if status == http.StatusTooManyRequests && s.retryAfter == "" {
			s.retryAfter = s.tc.LastHeader("Retry-After")
		}
	}
	return nil
}

func (s *ratelimitSteps) atLeastOneRejected(expected int) error {
	for _, status := range s.statuses {
		if status == expected {
			return nil
		}
	}
	return fmt.Errorf("no request answered %d, got %v", expected, s.statuses)
}

func (s *ratelimitSteps) rejectionHasRetryAfter() error {
	if s.retryAfter == "" {
		return fmt.Errorf("rejected response had no Retry-After header")
	}
	return nil
}
