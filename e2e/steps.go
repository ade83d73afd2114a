package e2e

import (
	"github.com/cucumber/godog"

	"workout/e2e/steps/athletes"
	"workout/e2e/steps/common"
	"workout/e2e/steps/ratelimit"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register category, training center and athlete steps
	athletes.RegisterSteps(ctx, tc)

	// Register rate-limiting steps
	ratelimit.RegisterSteps(ctx, tc)
}
