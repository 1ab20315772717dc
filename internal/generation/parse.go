package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/careerforge/backend/internal/models"
)

// StripFences removes a surrounding ```json / ``` code fence when the
// model wraps its output in one despite the instructions.
func StripFences(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// ParseCoverLetter decodes the four-section JSON object the resume
// prompt asks for. A malformed response is an upstream failure; no
// document may be written from it.
func ParseCoverLetter(raw string) (models.CoverLetter, error) {
	var letter models.CoverLetter
	if err := json.Unmarshal([]byte(StripFences(raw)), &letter); err != nil {
		return models.CoverLetter{}, fmt.Errorf("%w: unparseable cover letter: %v", ErrUpstream, err)
	}
	return letter, nil
}
