// README: Prompt builders for new itineraries and reschedules (pure string templating).
package itinerary

import (
	"fmt"
	"strings"
)

// RouteHint carries driving logistics between source and destination, when known.
type RouteHint struct {
	Duration string
	Distance string
}

func (h RouteHint) IsZero() bool {
	return h.Duration == "" && h.Distance == ""
}

// BuildTripPrompt instructs the model to write a days-long HTML itinerary from source to destination.
func BuildTripPrompt(source, destination string, days int) string {
	return BuildTripPromptWithRoute(source, destination, days, RouteHint{})
}

// BuildTripPromptWithRoute is BuildTripPrompt plus a logistics line describing the drive.
// With a zero hint the output equals BuildTripPrompt.
func BuildTripPromptWithRoute(source, destination string, days int, hint RouteHint) string {
	return fmt.Sprintf(tripPromptTemplate,
		days, source, destination,
		source, destination, routeLine(source, destination, hint),
		days, destination,
	)
}

// BuildReschedulePrompt asks the model to rework plan according to the traveler's request.
func BuildReschedulePrompt(plan, mood string) string {
	return fmt.Sprintf(reschedulePromptTemplate, plan, mood)
}

func routeLine(source, destination string, hint RouteHint) string {
	if hint.IsZero() {
		return ""
	}
	var parts []string
	if hint.Duration != "" {
		parts = append(parts, "takes about "+hint.Duration)
	}
	if hint.Distance != "" {
		parts = append(parts, "covers roughly "+hint.Distance)
	}
	return fmt.Sprintf("\n        -   **Travel Logistics:** Driving from %s to %s %s. Plan Day 1 and the last day around this.",
		source, destination, strings.Join(parts, " and "))
}

const tripPromptTemplate = `
    You are a world-class travel expert, known for creating perfectly balanced and practical itineraries. Your goal is to generate a %d-day travel plan from %s to %s.

    **Core Objective:** Create an itinerary that is efficient, enjoyable, and easy to follow. It should feel like a real, well-planned trip, not just a list of places.

    **Chain of Thought (Follow these steps):**
    1.  **Logistics First:** Consider the travel from %s to %s. How does that impact Day 1 and the last day?%s
    2.  **Thematic Days:** Group activities for each day by location and theme (e.g., "Historical Old Town," "Beach Relaxation," "Mountain Hike"). This minimizes travel time.
    3.  **Pacing:** Create a balanced rhythm. Don't schedule two major, tiring activities back-to-back. Mix highlights with relaxed moments. A typical day should have 2-3 main activities, plus meals.
    4.  **Practical Details:** For each activity, include estimated time, travel between locations, and approximate costs (entry fees, food). This is critical.
    5.  **HTML Formatting:** Structure the entire output using the clean HTML format specified below.

    **Strict HTML Structure (Adhere to this exactly):**
    -   **Main Title:** ` + "`<h1>🗺️ Your %d-Day %s Adventure</h1>`" + `
    -   **Introduction:** A single ` + "`<p>`" + ` tag with a 2-sentence overview of the trip.
    -   **Daily Section:**
        -   ` + "`<h2>📅 Day X: [A Catchy Theme for the Day]</h2>`" + `
        -   Follow this with a series of ` + "`<h3>`" + ` and ` + "`<p>`" + ` tags for the day's schedule.
    -   **Time Blocks (Use these icons):**
        -   Morning: ` + "`<h3>🌅 Morning: [Activity Name]</h3>`" + `
        -   Lunch: ` + "`<h3>🍽️ Lunch: [Restaurant Suggestion or Area]</h3>`" + `
        -   Afternoon: ` + "`<h3>🌞 Afternoon: [Activity Name]</h3>`" + `
        -   Evening: ` + "`<h3>🌙 Evening: [Activity Name]</h3>`" + `
        -   Dinner: ` + "`<h3>🍴 Dinner: [Restaurant Suggestion or Area]</h3>`" + `
    -   **Descriptions:** Immediately after each ` + "`<h3>`" + `, use a ` + "`<p>`" + ` tag for a 1-2 sentence description, including practical details like *duration, travel time from previous activity, and estimated cost*.
    -   **Daily Budget:** End each day's section with ` + "`<h4><strong>Estimated Daily Budget:</strong> [Approximate Cost]</h4>`" + `

    **Example of a Perfect Day's Output:**
    ` + "```html" + `
    <h2>📅 Day 1: Arrival and Coastal Charm</h2>
    <h3>🌅 Morning: Arrive and Settle In</h3>
    <p>Arrive at the airport, travel to your hotel (approx. 1 hour, ₹1200 taxi). Check in and take a moment to relax.</p>
    <h3>🍽️ Lunch: Local Cafe</h3>
    <p>Enjoy a light lunch at a nearby cafe to get a taste of the local flavors (approx. ₹500).</p>
    <h3>🌞 Afternoon: Explore the Main Beach</h3>
    <p>Walk along the famous beach, enjoy the views, and maybe dip your toes in the water. This is a great, low-key way to start your trip (2-3 hours).</p>
    <h3>🌙 Evening: Sunset Point</h3>
    <p>Head to the popular sunset viewpoint (20 min walk from the beach). It's a must-see! Arrive a bit early to get a good spot.</p>
    <h4><strong>Estimated Daily Budget:</strong> ₹2000 (excluding accommodation)</h4>
    ` + "```" + `

    **What to Avoid:**
    -   Do not use lists (` + "`<ul>`, `<ol>`" + `).
    -   Do not include more than 4-5 main activities per day.
    -   Do not write long, generic descriptions. Keep them short, practical, and engaging.
    -   Do not forget to include travel times and costs. This is essential.
    -   Do not use complex HTML tags. Stick to ` + "`<h1>, <h2>, <h3>, <h4>, <p>, <strong>`" + `.
    `

const reschedulePromptTemplate = `
    You are an expert travel assistant, skilled at modifying existing itineraries to better suit a traveler's needs. Your primary goal is to be helpful and realistic.

    **Current Itinerary:**
    %s

    **Traveler's Request:**
    "%s"

    **Core Objective:** Intelligently modify the provided itinerary based on the traveler's request, while preserving the overall structure, trip duration, and logical flow.

    **Step-by-Step Thought Process:**
    1.  **Analyze the Request:** First, understand the core of the traveler's request. Are they asking for more relaxation, more adventure, a slower pace, or a budget adjustment? Identify keywords like "tired," "rushed," "cheaper," "adventurous," etc.
    2.  **Identify Target Days/Activities:** Pinpoint which parts of the itinerary need to change. Is it a specific day (e.g., "Day 2") or a general theme?
    3.  **Smart Substitution:** Do not just delete activities. Replace them with alternatives that match the request.
        -   If "tired" or "relaxing": Substitute a hike with a spa visit, a walking tour with a scenic boat ride, or a busy market with a quiet park.
        -   If "adventurous": Replace a museum visit with a zip-lining activity or a city walk with a trek.
        -   If "budget concerns": Find free alternatives (e.g., public parks, free walking tours) or cheaper options (e.g., street food instead of a fancy restaurant).
        -   If "too rushed": Remove the least essential activity of the day and extend the time for the remaining ones. Add a "Leisure Time" block.
    4.  **Recalculate Timings:** Adjust the timings for the new activities, including realistic travel times between locations. Ensure the day still flows logically.
    5.  **Preserve HTML Structure:** Re-generate the full itinerary using the *exact same HTML structure* as the original plan (` + "`<h1>`, `<h2>`, `<h3>`, `<p>`" + `, etc.).

    **Critical Rules to Follow:**
    -   **Do Not Change the Trip Duration:** The total number of days must remain the same unless explicitly asked.
    -   **Maintain Geographic Logic:** Do not suggest an activity that is geographically nonsensical (e.g., a location that is hours away for a 1-hour activity).
    -   **Acknowledge and Explain:** Start the response by acknowledging their request and briefly explaining the key changes you made.
    -   **Return the FULL Itinerary:** The final output must be the complete, updated itinerary for all days, not just the changed parts.

    **Response Format:**
    1.  Start with a single ` + "`<p>`" + ` tag acknowledging the request and summarizing the changes. For example: ` + "`\"<p>I've updated your itinerary to be more relaxing on Day 2 by replacing the trek with a peaceful boat ride and adding more leisure time. Here is the revised plan:</p>\"`" + `
    2.  Provide the complete, day-by-day updated itinerary, following the original HTML structure precisely.
    `
