package advanced

import (
	"atsresume/internal/types"
)

// Roadmap suggests the next career level and three steps towards it.
// topRole is the best matching reference role, or empty when none is known.
func Roadmap(seniority, topRole string) *types.CareerRoadmap {
	if topRole == "" {
		topRole = "Software Professional"
	}

	switch seniority {
	case SenioritySenior:
		return &types.CareerRoadmap{
			TargetNextLevel: "Architect / Manager",
			Steps: []string{
				"Strategy: Focus on cross-functional leadership and stakeholder management",
				"System Architecture: Influence long-term technical debt and architectural decisions",
				"Public Presence: Speak at conferences or write technical blogs to establish authority",
			},
		}
	case SeniorityMid:
		return &types.CareerRoadmap{
			TargetNextLevel: "Senior Professional",
			Steps: []string{
				"Develop mentorship skills by contributing to open-source or helping juniors",
				"Deep dive into System Design and Scalability patterns",
				"Take ownership of a major project lifecycle from conception to deployment",
			},
		}
	default:
		return &types.CareerRoadmap{
			TargetNextLevel: "Mid-Level Professional",
			Steps: []string{
				"Obtain a professional certification in " + topRole,
				"Build 2 high-quality portfolio projects demonstrating end-to-end execution",
				"Focus on 'Clean Code' principles and Version Control (Git) mastery",
			},
		}
	}
}
