// Package report renders a normalized diagnosis as a markdown report.
package report

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cbroglie/mustache"
	"github.com/dustin/go-humanize"

	"github.com/dermassist/dermassist/internal/core/config"
	"github.com/dermassist/dermassist/internal/core/models"
)

// DefaultTemplate is used unless the user drops a custom template at
// <configdir>/report_template.md.
const DefaultTemplate = `# Dermatology Self-Assessment Report

Generated {{generated_at}}{{#user_name}} for {{user_name}}{{/user_name}}{{#age}} (age {{age}}){{/age}}.

**Predicted condition:** {{predicted_disease}} ({{confidence_score}}% confidence)
{{#image_name}}
**Image:** {{image_name}} ({{image_size}})
{{/image_name}}

{{assistant_message}}
{{#has_actions}}

## Suggested actions
{{#suggested_actions}}
- {{.}}
{{/suggested_actions}}
{{/has_actions}}

---
This is an automated self-assessment, not a medical diagnosis. Consult a
doctor for any concerning skin condition.
`

// Render produces the report for one result. imageName/imageSize describe the
// submitted photo and may be zero for chat-derived results.
func Render(res *models.Result, imageName string, imageSize int, generatedAt time.Time) (string, error) {
	template := DefaultTemplate
	if data, err := os.ReadFile(filepath.Join(config.Dir(), "report_template.md")); err == nil {
		template = string(data)
	}

	data := map[string]interface{}{
		"generated_at":      generatedAt.Format("2006-01-02 15:04"),
		"user_name":         res.UserInfo.Name,
		"age":               res.UserInfo.AgeField(),
		"predicted_disease": res.PredictedDisease,
		"confidence_score":  res.ConfidenceScore,
		"assistant_message": res.AssistantMessage,
		"suggested_actions": res.SuggestedActions,
		"has_actions":       len(res.SuggestedActions) > 0,
		"image_name":        imageName,
	}
	if imageSize > 0 {
		data["image_size"] = humanize.Bytes(uint64(imageSize))
	}

	return mustache.Render(template, data)
}
