package enrichment

import (
	"context"
	"fmt"

	"github.com/minji/esg-compass/internal/types"
)

// MockGenerator produces deterministic templated content without touching
// any external service. It is the working mode when no API key is
// configured and the fixture mode for tests.
type MockGenerator struct{}

// GenerateNarrative returns templated Korean text built from the inputs.
// Same inputs, same output.
func (m *MockGenerator) GenerateNarrative(_ context.Context, companyName, referenceSentence string, riskTag types.Risk, sentimentScore float64) (Narrative, error) {
	explanation := fmt.Sprintf(
		"%s은(는) 지속가능경영 보고서에서 \"%s\"라는 활동이 확인된 기업입니다. 해당 활동은 사용자가 선택한 SDG 가치와 직접적으로 맞닿아 있습니다.",
		companyName, referenceSentence)
	if referenceSentence == "" {
		explanation = fmt.Sprintf("%s은(는) 선택하신 SDG 분야에서 주목할 만한 활동을 보이는 기업입니다.", companyName)
	}

	report := fmt.Sprintf(
		"%s의 투자 위험 분류는 %s이며, 핵심 SDG 활동의 감성 점수는 %.2f입니다. 공시된 활동의 방향성과 빈도를 고려할 때 선택하신 가치관과 부합하는 투자 대상으로 검토할 수 있습니다. 본 내용은 정보 제공 목적이며 투자 권유가 아닙니다.",
		companyName, riskTag.KoreanLabel(), sentimentScore)

	post := fmt.Sprintf("%s와 함께 만드는 지속가능한 내일! #ESG투자 #SDGs #%s", companyName, riskTag.KoreanLabel())

	return Narrative{
		Explanation:      explanation,
		InvestmentReport: report,
		SocialPost:       post,
	}, nil
}

// GenerateImage reports no visual available in mock mode.
func (m *MockGenerator) GenerateImage(_ context.Context, _, _ string) (string, error) {
	return "", nil
}

// GenerateVideo reports no video available in mock mode.
func (m *MockGenerator) GenerateVideo(_ context.Context, _, _ string) (string, error) {
	return "", nil
}
