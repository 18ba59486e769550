package domain

import (
	"context"
	"time"
)

// ============================================================================
// Catalog
// ============================================================================

var Roles = []string{
	"SWE - Frontend", "SWE - Backend", "SWE - Full Stack", "Data Scientist", "ML/AI Engineer",
	"DevOps / SRE", "Security", "PM", "Other",
}

var ExperienceLevels = []string{"Student / New Grad", "Junior (0–2y)", "Mid (2–5y)", "Senior (5+y)"}

type FocusGroup struct {
	Group  string   `json:"group"`
	Topics []string `json:"topics"`
}

var FocusGroups = []FocusGroup{
	{Group: "Algorithms & Data Structures", Topics: []string{
		"Arrays", "Strings", "Hash Tables", "Two Pointers", "Stacks & Queues", "Linked Lists", "Trees",
		"Graphs", "Recursion", "Dynamic Programming", "Greedy", "Sorting & Searching",
		"Heaps / Priority Queues", "Bit Manipulation",
	}},
	{Group: "System Design", Topics: []string{
		"High-Level Design", "APIs & REST", "Databases (SQL/NoSQL)", "Caching", "Load Balancing",
		"Sharding & Partitioning", "Messaging & Queues", "Event-Driven Systems",
		"Consistency & Availability", "Observability",
	}},
	{Group: "Back-end & Infra", Topics: []string{
		"Concurrency / Multithreading", "Networking Basics", "Authentication & Authorization",
		"Security Fundamentals", "CI/CD", "Containers (Docker)", "Kubernetes Basics",
	}},
	{Group: "Frontend", Topics: []string{
		"JavaScript/TypeScript", "React", "State Management", "Accessibility", "Performance",
		"Testing (Jest/Cypress)",
	}},
	{Group: "Data / ML", Topics: []string{
		"SQL", "Pandas / Data Wrangling", "Modeling Basics", "Evaluation & Metrics",
		"Prompt Engineering", "Vector Databases",
	}},
	{Group: "Behavioral", Topics: []string{
		"STAR Method", "Leadership & Ownership", "Collaboration", "Conflict Resolution", "Communication",
	}},
}

// FocusTopics flattens FocusGroups in display order.
func FocusTopics() []string {
	var topics []string
	for _, g := range FocusGroups {
		topics = append(topics, g.Topics...)
	}
	return topics
}

type OnboardingOptions struct {
	Roles            []string     `json:"roles"`
	ExperienceLevels []string     `json:"experience_levels"`
	FocusGroups      []FocusGroup `json:"focus_groups"`
}

// ============================================================================
// Wizard
// ============================================================================

type OnboardingStep int

const (
	StepBasics OnboardingStep = iota
	StepFocus
	StepNarrative
	StepReview
)

// OnboardingForm is the wizard's form state and the payload of profile edits.
type OnboardingForm struct {
	FullName   string   `json:"fullName" validate:"required,max=100,valid_name,no_emoji"`
	Role       string   `json:"role" validate:"required,known_role"`
	Experience string   `json:"experience" validate:"required,known_experience"`
	Focus      []string `json:"focus" validate:"required,min=1,dive,known_topic"`
	Strengths  string   `json:"strengths" validate:"required,max=2000,prose"`
	Challenges string   `json:"challenges" validate:"required,max=2000,prose"`
}

// OnboardingDraft is the in-progress wizard persisted between visits.
type OnboardingDraft struct {
	Step      OnboardingStep `json:"step"`
	Form      OnboardingForm `json:"form"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type OnboardingStatus struct {
	Onboarded bool `json:"onboarded"`
}

type OnboardingDraftRepository interface {
	// Get returns (nil, nil) when no draft is stored.
	Get(ctx context.Context, userID string) (*OnboardingDraft, error)
	Save(ctx context.Context, userID string, draft *OnboardingDraft) error
	Delete(ctx context.Context, userID string) error
}

type OnboardingUsecase interface {
	Options() OnboardingOptions
	GetStatus(ctx context.Context, userID string) (*OnboardingStatus, error)
	GetDraft(ctx context.Context, userID string) (*OnboardingDraft, error)
	SaveDraft(ctx context.Context, userID string, draft *OnboardingDraft) (*OnboardingDraft, error)
	DiscardDraft(ctx context.Context, userID string) error
	Next(ctx context.Context, userID string, draft *OnboardingDraft) (*OnboardingDraft, error)
	Back(ctx context.Context, userID string, draft *OnboardingDraft) (*OnboardingDraft, error)
	Complete(ctx context.Context, userID string, form *OnboardingForm) error
}
