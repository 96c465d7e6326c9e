package advanced

import (
	"slices"
	"strings"

	"atsresume/internal/types"
	"atsresume/internal/utils"
	"atsresume/internal/vocabulary"
)

const (
	maxSuitableRoles = 3
	maxCoreSkills    = 3
)

// RoleSuitability ranks the reference roles by how many of the candidate's
// technical skills contain one of the role's core skill fragments. Only the
// best three roles are returned.
func RoleSuitability(skills types.Skills, roles []vocabulary.RoleProfile) []types.RoleSuitability {
	owned := make([]string, 0, len(skills.AllTechnical))
	for _, s := range skills.AllTechnical {
		owned = append(owned, strings.ToLower(s))
	}

	out := make([]types.RoleSuitability, 0, len(roles))
	for _, role := range roles {
		var overlap []string
		for _, s := range owned {
			if containsAny(s, role.Skills) {
				overlap = append(overlap, s)
			}
		}

		fit := 0.0
		if len(role.Skills) > 0 {
			fit = utils.Clamp(utils.Round(float64(len(overlap))/float64(len(role.Skills))*100, 2), 0, 100)
		}
		matched := append([]string{}, utils.Head(overlap, maxCoreSkills)...)

		out = append(out, types.RoleSuitability{
			Role:              role.Name,
			Suitability:       fit,
			MatchedCoreSkills: matched,
		})
	}

	slices.SortStableFunc(out, func(a, b types.RoleSuitability) int {
		switch {
		case a.Suitability > b.Suitability:
			return -1
		case a.Suitability < b.Suitability:
			return 1
		}
		return 0
	})
	return utils.Head(out, maxSuitableRoles)
}
