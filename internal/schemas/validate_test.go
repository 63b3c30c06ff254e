package schemas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONString_ValidNarrative(t *testing.T) {
	content := `{
		"explanation": "설명",
		"investment_report": "리포트",
		"sns_promotion": "홍보"
	}`
	assert.NoError(t, ValidateJSONString(NarrativeOutputSchema, content))
}

func TestValidateJSONString_ValidWithAlignment(t *testing.T) {
	var scores []string
	for i := 0; i < 17; i++ {
		scores = append(scores, "3")
	}
	content := `{
		"explanation": "설명",
		"investment_report": "리포트",
		"sns_promotion": "홍보",
		"sdg_alignment": [` + strings.Join(scores, ",") + `]
	}`
	assert.NoError(t, ValidateJSONString(NarrativeOutputSchema, content))
}

func TestValidateJSONString_MissingRequiredField(t *testing.T) {
	content := `{"explanation": "설명"}`

	err := ValidateJSONString(NarrativeOutputSchema, content)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateJSONString_EmptyFieldRejected(t *testing.T) {
	content := `{"explanation": "", "investment_report": "리포트", "sns_promotion": "홍보"}`
	assert.Error(t, ValidateJSONString(NarrativeOutputSchema, content))
}

func TestValidateJSONString_WrongAlignmentLength(t *testing.T) {
	content := `{
		"explanation": "설명",
		"investment_report": "리포트",
		"sns_promotion": "홍보",
		"sdg_alignment": [1, 2, 3]
	}`
	assert.Error(t, ValidateJSONString(NarrativeOutputSchema, content))
}

func TestValidateJSONString_ExtraFieldRejected(t *testing.T) {
	content := `{
		"explanation": "설명",
		"investment_report": "리포트",
		"sns_promotion": "홍보",
		"surprise": true
	}`
	assert.Error(t, ValidateJSONString(NarrativeOutputSchema, content))
}

func TestValidateJSONString_UnknownSchema(t *testing.T) {
	err := ValidateJSONString("missing.json", `{}`)
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

func TestValidationError_MessageListsFields(t *testing.T) {
	err := ValidateJSONString(NarrativeOutputSchema, `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
