package seeder

import (
	"time"

	"github.com/crosstrain/exchange/internal/models"
)

// demoPatterns is the starter catalog loaded by the seed binary. Content
// mirrors the kinds of playbooks the freight operations staff actually
// trade: quoting, carrier handling, compliance checks.
var demoPatterns = []models.SharePatternRequest{
	{
		Title:           "Freight Quote Objection Handling",
		Description:     "De-escalating price pushback on spot quotes by reframing around transit reliability",
		Category:        models.CategorySales,
		OriginalStaffID: "hunter",
		SuccessRate:     89,
		UsageCount:      156,
		Difficulty:      models.DifficultyMedium,
		Tags:            []string{"quoting", "objections", "spot-market"},
		Content: models.PatternContent{
			TriggerCondition: "Prospect says the quote is higher than a competitor's",
			Approach:         "Acknowledge the gap, then walk through on-time percentage and claims history before revisiting price",
			ExecutionSteps: []string{
				"Confirm the competing quote covers the same accessorials",
				"Share lane-level on-time stats for the last quarter",
				"Offer a two-load trial at the quoted rate",
			},
			Outcomes:       []string{"Higher close rate on contested quotes", "Fewer one-load customers"},
			LessonsLearned: []string{"Never open by matching the competitor's number"},
		},
	},
	{
		Title:           "Carrier No-Show Recovery",
		Description:     "Recovering a load the same day when the booked carrier goes dark",
		Category:        models.CategoryProblemSolving,
		OriginalStaffID: "logan",
		SuccessRate:     93,
		UsageCount:      88,
		Difficulty:      models.DifficultyHard,
		Tags:            []string{"dispatch", "carriers", "recovery"},
		Content: models.PatternContent{
			TriggerCondition: "Carrier unreachable within two hours of scheduled pickup",
			Approach:         "Run the backup carrier list for the lane while notifying the shipper early with a revised window",
			ExecutionSteps: []string{
				"Call the carrier twice, then mark the load at risk",
				"Post to the backup board with a recovery premium",
				"Notify the shipper before they ask",
			},
			Outcomes:       []string{"Most at-risk loads recovered same day"},
			LessonsLearned: []string{"Shippers forgive delays they hear about early"},
		},
	},
	{
		Title:           "DOT Compliance Pre-Check Script",
		Description:     "Screening new carriers for authority and insurance gaps before first dispatch",
		Category:        models.CategoryCompliance,
		OriginalStaffID: "kameelah",
		SuccessRate:     97,
		UsageCount:      134,
		Difficulty:      models.DifficultyEasy,
		Tags:            []string{"onboarding", "dot", "insurance"},
		Content: models.PatternContent{
			TriggerCondition: "New carrier packet received",
			Approach:         "Verify operating authority, insurance expiry, and safety rating in one pass before the packet reaches dispatch",
			ExecutionSteps: []string{
				"Check authority status against the FMCSA record",
				"Confirm insurance certificate covers the commodity",
				"Flag conditional safety ratings for manual review",
			},
			Outcomes:       []string{"Zero dispatches to lapsed-authority carriers"},
			LessonsLearned: []string{"Insurance expiry dates lapse mid-relationship, re-check quarterly"},
		},
	},
	{
		Title:           "Cold Outreach Warm-Up Sequence",
		Description:     "Three-touch sequence that references the prospect's actual shipping lanes",
		Category:        models.CategoryCommunication,
		OriginalStaffID: "desiree",
		SuccessRate:     74,
		UsageCount:      201,
		Difficulty:      models.DifficultyMedium,
		Tags:            []string{"prospecting", "email", "lead-gen"},
		Content: models.PatternContent{
			TriggerCondition: "New prospect added with known lane data",
			Approach:         "Lead with a lane-specific observation instead of a capabilities pitch",
			ExecutionSteps: []string{
				"Reference one lane the prospect ships and its current market rate",
				"Follow up with a short case from the same region",
				"Close the sequence with a single direct ask",
			},
			Outcomes:       []string{"Reply rate roughly doubled over generic outreach"},
			LessonsLearned: []string{"One specific lane beats a full capabilities deck"},
		},
	},
	{
		Title:           "Angry Shipper De-escalation",
		Description:     "Keeping the account after a service failure on a priority load",
		Category:        models.CategoryCustomerHandling,
		OriginalStaffID: "shanell",
		SuccessRate:     86,
		UsageCount:      67,
		Difficulty:      models.DifficultyHard,
		Tags:            []string{"service-failure", "retention"},
		Content: models.PatternContent{
			TriggerCondition: "Shipper escalates after a missed delivery commitment",
			Approach:         "Own the failure in the first sentence, quantify the impact, and present the prevention change already made",
			ExecutionSteps: []string{
				"State what went wrong without qualifiers",
				"Present the corrective action with a date",
				"Offer a concession scaled to the actual impact",
			},
			Outcomes:       []string{"Most escalations closed without account loss"},
			LessonsLearned: []string{"Explanations read as excuses until the apology lands first"},
		},
	},
}

// demoRequests are open help requests included so the requests tab is not
// empty on first run
var demoRequests = []models.SubmitRequestInput{
	{
		RequestingStaffID: "gary",
		Category:          models.CategorySales,
		SpecificTopic:     "Handling multi-stop quote negotiations",
		Context:           "Prospect wants a blended rate across three stops and I keep losing margin on the middle leg",
		Urgency:           models.UrgencyHigh,
	},
	{
		RequestingStaffID: "clarence",
		Category:          models.CategoryCustomerHandling,
		SpecificTopic:     "Setting expectations on detention billing",
		Context:           "Repeat disputes on detention charges from the same two accounts",
		Urgency:           models.UrgencyMedium,
	},
	{
		RequestingStaffID: "regina",
		Category:          models.CategoryCompliance,
		SpecificTopic:     "Hazmat paperwork for mixed loads",
		Urgency:           models.UrgencyCritical,
	},
}

// demoSessions schedules a starter session inside the default lookahead
// window
func demoSessions(now time.Time) []models.ScheduleSessionInput {
	return []models.ScheduleSessionInput{
		{
			Title:           "Spot Market Quoting Workshop",
			Description:     "Walkthrough of the objection-handling playbook on live lane data",
			Topic:           "Quoting under volatile market rates",
			Category:        models.CategorySales,
			ScheduledAt:     now.Add(72 * time.Hour).Format(time.RFC3339),
			DurationMinutes: 45,
			Participants: []models.SessionParticipant{
				{StaffID: "hunter", Role: models.RoleHost},
				{StaffID: "gary", Role: models.RoleParticipant},
				{StaffID: "desiree", Role: models.RoleParticipant},
			},
		},
		{
			Title:           "Carrier Vetting Essentials",
			Description:     "Compliance pre-check walkthrough for dispatch and onboarding staff",
			Topic:           "Authority and insurance screening",
			Category:        models.CategoryCompliance,
			ScheduledAt:     now.Add(120 * time.Hour).Format(time.RFC3339),
			DurationMinutes: 60,
			Participants: []models.SessionParticipant{
				{StaffID: "kameelah", Role: models.RoleHost},
				{StaffID: "logan", Role: models.RoleParticipant},
				{StaffID: "miles", Role: models.RoleParticipant},
			},
		},
	}
}
