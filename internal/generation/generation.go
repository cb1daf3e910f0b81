// Package generation produces marketing copy for catalog entries with a
// third-party language model.
package generation

import (
	"context"
	"errors"
	"strings"
	"text/template"

	"github.com/example/curated-storefront/internal/validation"
	"go.uber.org/zap"
)

// Input is what an admin knows about a product before it has copy.
type Input struct {
	ProductName    string `json:"productName" validate:"min=2"`
	Category       string `json:"category" validate:"min=2"`
	KeyFeatures    string `json:"keyFeatures" validate:"min=10"`
	TargetAudience string `json:"targetAudience" validate:"min=3"`
}

var inputMessages = validation.Messages{
	"productName":    {"min": "Product name is required"},
	"category":       {"min": "Category is required"},
	"keyFeatures":    {"min": "List at least one key feature"},
	"targetAudience": {"min": "Describe the target audience"},
}

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNoGenerator is returned by a Service built without a backend.
var ErrNoGenerator = errors.New("no text generator configured")

const (
	msgInvalidInput  = "Invalid form data."
	msgGenerationErr = "Failed to generate description due to a server error."
)

var promptTemplate = template.Must(template.New("description").Parse(
	`You are an expert copywriter specializing in creating engaging product descriptions.

Based on the following information, write a compelling and informative product description:

Product Name: {{.ProductName}}
Category: {{.Category}}
Key Features: {{.KeyFeatures}}
Target Audience: {{.TargetAudience}}

Description:`))

// Prompt renders the copywriter prompt for in.
func Prompt(in Input) (string, error) {
	var b strings.Builder
	if err := promptTemplate.Execute(&b, in); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Result mirrors the submission result shape for the admin tool.
type Result struct {
	Success     bool                   `json:"success"`
	Description string                 `json:"description,omitempty"`
	Message     string                 `json:"message,omitempty"`
	FieldErrors validation.FieldErrors `json:"fieldErrors,omitempty"`
	Err         error                  `json:"-"`
}

type Service struct {
	generator Generator
	validator *validation.Validator
	logger    *zap.Logger
}

// NewService accepts a nil generator; every call then fails with the
// generic message.
func NewService(g Generator, v *validation.Validator, logger *zap.Logger) *Service {
	v.RegisterMessages(Input{}, inputMessages)
	return &Service{generator: g, validator: v, logger: logger.Named("generation")}
}

// GenerateDescription validates in and makes one round trip to the generator.
func (s *Service) GenerateDescription(ctx context.Context, in Input) Result {
	if errs := s.validator.Struct(in); errs != nil {
		return Result{Message: msgInvalidInput, FieldErrors: errs}
	}

	description, err := s.generate(ctx, in)
	if err != nil {
		s.logger.Error("failed to generate description",
			zap.String("product", in.ProductName),
			zap.Error(err),
		)
		return Result{Message: msgGenerationErr, Err: err}
	}

	s.logger.Info("description generated", zap.String("product", in.ProductName), zap.Int("length", len(description)))
	return Result{Success: true, Description: description}
}

func (s *Service) generate(ctx context.Context, in Input) (string, error) {
	if s.generator == nil {
		return "", ErrNoGenerator
	}
	prompt, err := Prompt(in)
	if err != nil {
		return "", err
	}
	out, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errors.New("generator returned an empty description")
	}
	return out, nil
}
