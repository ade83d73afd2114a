package athletes

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Request(ctx context.Context, method, path string, body any) error
	LastStatus() int
	LastBody() []byte
	ResponseField(path string) (any, error)
	Expand(s string) string
	Set(name, value string)
}

// RegisterSteps registers category, training center and athlete step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &athleteSteps{tc: tc}

	ctx.Step(`^a category "([^"]*)" exists$`, steps.categoryExists)
	ctx.Step(`^a training center "([^"]*)" exists$`, steps.trainingCenterExists)
	ctx.Step(`^a fresh valid cpf "([^"]*)"$`, steps.freshCPF)
	ctx.Step(`^an athlete "([^"]*)" with cpf "([^"]*)" in category "([^"]*)" at "([^"]*)" is registered$`, steps.athleteRegistered)
	ctx.Step(`^I register athlete "([^"]*)" with cpf "([^"]*)" in category "([^"]*)" at "([^"]*)"$`, steps.registerAthlete)
}

type athleteSteps struct {
	tc TestContext
}

func (s *athleteSteps) categoryExists(ctx context.Context, name string) error {
	return s.ensure(ctx, "/categorias", map[string]string{"nome": s.tc.Expand(name)})
}

func (s *athleteSteps) trainingCenterExists(ctx context.Context, name string) error {
	return s.ensure(ctx, "/centros_treinamento", map[string]string{
		"nome":         s.tc.Expand(name),
		"endereco":     "Rua das Flores, 100",
		"proprietario": "Marcos",
	})
}

// ensure creates the resource, accepting an existing one with the same name.
func (s *athleteSteps) ensure(ctx context.Context, path string, body any) error {
	if err := s.tc.Request(ctx, http.MethodPost, path, body); err != nil {
		return err
	}
	switch s.tc.LastStatus() {
	case http.StatusCreated, http.StatusSeeOther:
		return nil
	}
	return fmt.Errorf("POST %s: unexpected status %d: %s", path, s.tc.LastStatus(), s.tc.LastBody())
}

func (s *athleteSteps) freshCPF(name string) error {
	cpf, err := randomCPF()
	if err != nil {
		return err
	}
	s.tc.Set(name, cpf)
	return nil
}

func (s *athleteSteps) registerAthlete(ctx context.Context, name, cpf, category, center string) error {
	return s.tc.Request(ctx, http.MethodPost, "/atletas", map[string]any{
		"nome":               s.tc.Expand(name),
		"cpf":                s.tc.Expand(cpf),
		"idade":              28,
		"peso":               75.5,
		"altura":             1.78,
		"sexo":               "M",
		"categoria":          map[string]string{"nome": s.tc.Expand(category)},
		"centro_treinamento": map[string]string{"nome": s.tc.Expand(center)},
	})
}

// athleteRegistered registers the athlete and binds "{athlete_id}".
func (s *athleteSteps) athleteRegistered(ctx context.Context, name, cpf, category, center string) error {
	if err := s.registerAthlete(ctx, name, cpf, category, center); err != nil {
		return err
	}
	if s.tc.LastStatus() != http.StatusCreated {
		return fmt.Errorf("register athlete: unexpected status %d: %s", s.tc.LastStatus(), s.tc.LastBody())
	}
	id, err := s.tc.ResponseField("id")
	if err != nil {
		return err
	}
	s.tc.Set("athlete_id", fmt.Sprintf("%.0f", id))
	return nil
}

// randomCPF builds an 11-digit CPF with valid check digits from 9 random digits.
func randomCPF() (string, error) {
	digits := make([]byte, 0, 11)
	for len(digits) < 9 {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits = append(digits, byte('0'+n.Int64()))
	}
	if allSame(digits) {
		return randomCPF()
	}
	digits = append(digits, checkDigit(digits))
	digits = append(digits, checkDigit(digits))
	return string(digits), nil
}

func checkDigit(digits []byte) byte {
	sum := 0
	weight := len(digits) + 1
	for _, d := range digits {
		sum += int(d-'0') * weight
		weight--
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}

func allSame(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}
