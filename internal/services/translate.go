package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/codelearn-backend/internal/platform/apierr"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
	"github.com/yungbote/codelearn-backend/internal/platform/openai"
)

var supportedLanguages = []string{
	"JavaScript", "Python", "Java", "C++",
	"TypeScript", "Ruby", "Go", "PHP",
	"Swift", "Rust",
}

const translatePromptTemplate = `You are an expert programmer. Translate the following %[1]s code to %[2]s.
The translation should:
1. Follow %[2]s best practices and conventions
2. Maintain the same functionality
3. Include any necessary imports or package declarations
4. Preserve comments (translated to English if needed)

Here's the code to translate:

%[3]s

Respond only with the translated code, no explanations or markdown.`

type TranslateInput struct {
	SourceCode     string `json:"sourceCode"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

type TranslateOutput struct {
	TranslatedCode string `json:"translatedCode"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

type TranslationService interface {
	Translate(ctx context.Context, in TranslateInput) (*TranslateOutput, error)
	SupportedLanguages() []string
}

type translationService struct {
	log *logger.Logger
	ai  openai.Client
}

// NewTranslationService accepts a nil client; Translate then fails as an
// upstream error instead of the server refusing to start.
func NewTranslationService(log *logger.Logger, ai openai.Client) TranslationService {
	return &translationService{log: log.With("service", "TranslationService"), ai: ai}
}

func (s *translationService) SupportedLanguages() []string {
	out := make([]string, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

func isSupportedLanguage(lang string) bool {
	for _, l := range supportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

func (s *translationService) Translate(ctx context.Context, in TranslateInput) (_ *TranslateOutput, err error) {
	if strings.TrimSpace(in.SourceCode) == "" || in.SourceLanguage == "" || in.TargetLanguage == "" {
		return nil, apierr.Wrap(apierr.ErrInvalidArgument, "missing_fields", "Missing required fields")
	}
	if !isSupportedLanguage(in.SourceLanguage) || !isSupportedLanguage(in.TargetLanguage) {
		return nil, apierr.Wrap(apierr.ErrInvalidArgument, "unsupported_language", "Unsupported programming language")
	}

	ctx, span := tracer.Start(ctx, "translate.Translate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.String("translate.source_language", in.SourceLanguage),
		attribute.String("translate.target_language", in.TargetLanguage),
		attribute.Int("translate.source_bytes", len(in.SourceCode)),
	)

	if s.ai == nil {
		return nil, upstreamErr(errors.New("translation provider not configured"))
	}

	prompt := fmt.Sprintf(translatePromptTemplate, in.SourceLanguage, in.TargetLanguage, in.SourceCode)
	text, err := s.ai.GenerateText(ctx, "", prompt)
	if err != nil {
		s.log.Error("translation failed",
			"source_language", in.SourceLanguage,
			"target_language", in.TargetLanguage,
			"error", err,
		)
		return nil, upstreamErr(err)
	}
	code := stripCodeFences(text)
	if code == "" {
		return nil, upstreamErr(errors.New("No translation generated"))
	}
	return &TranslateOutput{
		TranslatedCode: code,
		SourceLanguage: in.SourceLanguage,
		TargetLanguage: in.TargetLanguage,
	}, nil
}

func upstreamErr(cause error) error {
	return apierr.New(http.StatusInternalServerError, "translation_failed", fmt.Errorf("Translation failed: %w: %w", apierr.ErrUpstream, cause))
}

// stripCodeFences removes a single surrounding ``` block the model may add
// despite being told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := strings.TrimPrefix(s, "```")
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return strings.TrimSpace(strings.Trim(body, "`"))
	}
	body = body[nl+1:]
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}
