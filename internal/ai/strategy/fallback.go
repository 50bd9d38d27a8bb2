package strategy

import "mockmate/internal/domain"

// Background jobs and session starts must degrade gracefully when the
// provider returns unusable output; there is no interactive user to retry.
// These banks back the generation strategies on parse failure.

var fallbackQuestions = map[domain.InterviewType][]domain.GeneratedQuestion{
	domain.InterviewTechnical: {
		{
			Text:       "Explain the difference between a process and a thread, and when you would choose one over the other.",
			Category:   string(domain.InterviewTechnical),
			Difficulty: string(domain.DifficultyMid),
			KeyPoints:  []string{"memory isolation", "scheduling", "context switch cost", "shared state"},
		},
		{
			Text:       "How would you design the schema for a system that tracks user activity events at high write volume?",
			Category:   string(domain.InterviewTechnical),
			Difficulty: string(domain.DifficultyMid),
			KeyPoints:  []string{"write path", "partitioning", "indexes", "retention"},
		},
		{
			Text:       "Walk through what happens when you type a URL into a browser and press enter.",
			Category:   string(domain.InterviewTechnical),
			Difficulty: string(domain.DifficultyJunior),
			KeyPoints:  []string{"DNS", "TCP handshake", "TLS", "HTTP request", "rendering"},
		},
		{
			Text:       "What strategies do you use to find and fix a memory leak in a long-running service?",
			Category:   string(domain.InterviewTechnical),
			Difficulty: string(domain.DifficultySenior),
			KeyPoints:  []string{"profiling", "heap snapshots", "monitoring", "reproduction"},
		},
		{
			Text:       "Describe how you would add caching to a read-heavy API without serving stale critical data.",
			Category:   string(domain.InterviewTechnical),
			Difficulty: string(domain.DifficultyMid),
			KeyPoints:  []string{"cache invalidation", "TTL", "consistency", "cache stampede"},
		},
	},
	domain.InterviewBehavioral: {
		{
			Text:       "Tell me about a time you disagreed with a teammate about a technical decision. How was it resolved?",
			Category:   string(domain.InterviewBehavioral),
			Difficulty: string(domain.DifficultyMid),
			KeyPoints:  []string{"conflict handling", "communication", "compromise", "outcome"},
		},
		{
			Text:       "Describe a situation where you had to deliver under a tight deadline. What did you trade off?",
			Category:   string(domain.InterviewBehavioral),
			Difficulty: string(domain.DifficultyMid),
			KeyPoints:  []string{"prioritization", "stakeholder communication", "scope cuts"},
		},
		{
			Text:       "Give me an example of a mistake you made in production and what you changed afterwards.",
			Category:   string(domain.InterviewBehavioral),
			Difficulty: string(domain.DifficultySenior),
			KeyPoints:  []string{"ownership", "root cause", "process improvement"},
		},
		{
			Text:       "Tell me about a time you had to learn a new technology quickly to finish a task.",
			Category:   string(domain.InterviewBehavioral),
			Difficulty: string(domain.DifficultyJunior),
			KeyPoints:  []string{"learning approach", "result", "follow-up"},
		},
		{
			Text:       "Describe a situation where you mentored or unblocked a colleague.",
			Category:   string(domain.InterviewBehavioral),
			Difficulty: string(domain.DifficultyMid),
			KeyPoints:  []string{"empathy", "knowledge sharing", "impact"},
		},
	},
	domain.InterviewCaseStudy: {
		{
			Text:       "A checkout page's conversion rate dropped 20% after a release. How do you investigate?",
			Category:   string(domain.InterviewCaseStudy),
			Difficulty: string(domain.DifficultyMid),
			KeyPoints:  []string{"hypotheses", "metrics", "rollback criteria", "experiment"},
		},
		{
			Text:       "Your team must cut infrastructure spend by 30% without hurting latency. Propose a plan.",
			Category:   string(domain.InterviewCaseStudy),
			Difficulty: string(domain.DifficultySenior),
			KeyPoints:  []string{"cost drivers", "right-sizing", "measurement", "risks"},
		},
		{
			Text:       "Estimate how many support agents a food-delivery app with one million daily orders needs.",
			Category:   string(domain.InterviewCaseStudy),
			Difficulty: string(domain.DifficultyMid),
			KeyPoints:  []string{"assumptions", "contact rate", "handle time", "sanity check"},
		},
		{
			Text:       "A partner API you depend on will be deprecated in three months. Outline your migration plan.",
			Category:   string(domain.InterviewCaseStudy),
			Difficulty: string(domain.DifficultyMid),
			KeyPoints:  []string{"inventory", "abstraction layer", "dual running", "cutover"},
		},
		{
			Text:       "Product wants a recommendation feature in two weeks. Engineering says it needs two months. What do you do?",
			Category:   string(domain.InterviewCaseStudy),
			Difficulty: string(domain.DifficultySenior),
			KeyPoints:  []string{"scoping", "mvp", "expectation management"},
		},
	},
}

// fallbackBank returns the default bank for a type. Mixed sessions draw
// round-robin from all banks.
func fallbackBank(itype domain.InterviewType) []domain.GeneratedQuestion {
	if itype != domain.InterviewMixed {
		return fallbackQuestions[itype]
	}
	var bank []domain.GeneratedQuestion
	order := []domain.InterviewType{domain.InterviewTechnical, domain.InterviewBehavioral, domain.InterviewCaseStudy}
	for i := 0; ; i++ {
		added := false
		for _, t := range order {
			if i < len(fallbackQuestions[t]) {
				bank = append(bank, fallbackQuestions[t][i])
				added = true
			}
		}
		if !added {
			return bank
		}
	}
}

// fallbackVariant is the default model answer returned when variant
// generation output cannot be parsed.
func fallbackVariant(question *domain.InterviewQuestion) domain.AnswerVariant {
	v := domain.AnswerVariant{
		Content: "Structure your answer around the question's key points: state the context, explain your reasoning step by step, and close with the concrete outcome or trade-offs.",
		KeyPoints: []string{
			"address the question directly",
			"explain the reasoning, not just the conclusion",
			"mention trade-offs or alternatives",
		},
		Confidence: 0.3,
		FollowUps: []string{
			"What would you do differently with more time?",
			"How would your approach change at a larger scale?",
		},
	}
	if IsBehavioralQuestion(question.Text) {
		v.STAR = &domain.STARBreakdown{
			Situation: "Briefly set the scene and your role.",
			Task:      "State what you were responsible for.",
			Action:    "Describe the specific steps you took.",
			Result:    "Quantify the outcome and what you learned.",
		}
	}
	return v
}
