package enrichment

import "fmt"

// FallbackNarrative is the deterministic text used when narrative
// generation fails. Every recommendation must always carry non-empty text
// fields; the fallback keeps that promise without retrying the backend.
func FallbackNarrative(companyName, goalTitle string) Narrative {
	return Narrative{
		Explanation: fmt.Sprintf(
			"%s은(는) '%s' 분야에서 주목할 만한 활동을 보이는 기업입니다.",
			companyName, goalTitle),
		InvestmentReport: fmt.Sprintf(
			"%s은(는) 선택하신 SDG 가치와 부합하는 활동이 확인된 기업입니다. 상세 분석 리포트는 현재 제공할 수 없지만, 산출된 매칭 점수는 공시 데이터 기반으로 계산된 값입니다.",
			companyName),
		SocialPost: fmt.Sprintf("%s와 함께 만드는 지속가능한 내일! #ESG #SDGs", companyName),
	}
}
