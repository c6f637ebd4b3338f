package suggestion

import (
	"fmt"
	"strings"
)

// ActivityCount is how many suggestions the model is asked for.
const ActivityCount = 5

const SystemInstruction = "You are a helpful assistant that suggests local activities based on user preferences. Always respond with valid JSON only."

const promptTemplate = `Based on the following survey responses, suggest %d fun activities the user can do in their local area:

Survey Responses:
- Hobbies: %s
- Location (zip code): %s

Please provide %d specific, actionable activities that match their preferences and are available in their local area. For each activity, include:
1. Activity name
2. Brief description (1-2 sentences)
3. Why it matches their preferences
4. Estimated cost range (Free, $, $$, $$$)
5. A relevant website link where they can learn more or book the activity
6. Approximate coordinates (latitude and longitude) for the activity location

Format the response as a JSON array with objects containing: name, description, whyItMatches, costRange, link, coordinates (with lat and lng properties).`

// BuildPrompt renders the user prompt for a survey.
func BuildPrompt(hobbies []string, zipCode string) string {
	return fmt.Sprintf(promptTemplate, ActivityCount, strings.Join(hobbies, ", "), zipCode, ActivityCount)
}
