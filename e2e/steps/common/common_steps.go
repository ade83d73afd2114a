package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Request(ctx context.Context, method, path string, body any) error
	RequestRaw(ctx context.Context, method, path, doc string) error
	LastStatus() int
	LastBody() []byte
	ResponseField(path string) (any, error)
	Expand(s string) string
}

// RegisterSteps registers the generic request and assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^I (GET|DELETE) "([^"]*)"$`, steps.requestWithoutBody)
	ctx.Step(`^I (POST|PATCH) to "([^"]*)" with:$`, steps.requestWithBody)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be (\d+)$`, steps.fieldShouldBeNumber)
	ctx.Step(`^the response field "([^"]*)" should be present$`, steps.fieldShouldBePresent)
	ctx.Step(`^the response field "([^"]*)" should be absent$`, steps.fieldShouldBeAbsent)
	ctx.Step(`^the response should contain "([^"]*)"$`, steps.bodyShouldContain)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) requestWithoutBody(ctx context.Context, method, path string) error {
	return s.tc.Request(ctx, method, path, nil)
}

func (s *commonSteps) requestWithBody(ctx context.Context, method, path string, doc *godog.DocString) error {
	return s.tc.RequestRaw(ctx, method, path, doc.Content)
}

func (s *commonSteps) statusShouldBe(expected int) error {
	if got := s.tc.LastStatus(); got != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, got, s.tc.LastBody())
	}
	return nil
}

func (s *commonSteps) fieldShouldBe(field, expected string) error {
	v, err := s.tc.ResponseField(field)
	if err != nil {
		return err
	}
	expected = s.tc.Expand(expected)
	if got := fmt.Sprint(v); got != expected {
		return fmt.Errorf("field %q: expected %q, got %q", field, expected, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeNumber(field string, expected int) error {
	v, err := s.tc.ResponseField(field)
	if err != nil {
		return err
	}
	n, ok := v.(float64)
	if !ok || n != float64(expected) {
		return fmt.Errorf("field %q: expected %d, got %v", field, expected, v)
	}
	return nil
}

func (s *commonSteps) fieldShouldBePresent(field string) error {
	_, err := s.tc.ResponseField(field)
	return err
}

func (s *commonSteps) fieldShouldBeAbsent(field string) error {
	if _, err := s.tc.ResponseField(field); err == nil {
		return fmt.Errorf("field %q should be absent: %s", field, s.tc.LastBody())
	}
	return nil
}

func (s *commonSteps) bodyShouldContain(text string) error {
	text = s.tc.Expand(text)
	if !strings.Contains(string(s.tc.LastBody()), text) {
		return fmt.Errorf("response does not contain %s: %s", strconv.Quote(text), s.tc.LastBody())
	}
	return nil
}
