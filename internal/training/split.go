package training

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// StratifiedSplit partitions samples into train and test sets, keeping the
// role proportions in both. The seed fixes the shuffle so a rerun with the
// same data reproduces the exact partition.
func StratifiedSplit(samples []Sample, testFraction float64, seed int64) (train, test []Sample, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in (0,1), got %v", testFraction)
	}

	byRole := make(map[string][]Sample)
	for _, s := range samples {
		byRole[s.Role] = append(byRole[s.Role], s)
	}

	roles := make([]string, 0, len(byRole))
	for role := range byRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	rng := rand.New(rand.NewSource(seed))

	for _, role := range roles {
		group := byRole[role]
		if len(group) < 2 {
			return nil, nil, fmt.Errorf("role %q has %d sample(s); a stratified split needs at least 2 per role", role, len(group))
		}

		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})

		nTest := int(math.Round(float64(len(group)) * testFraction))
		if nTest < 1 {
			nTest = 1
		}
		if nTest >= len(group) {
			nTest = len(group) - 1
		}

		test = append(test, group[:nTest]...)
		train = append(train, group[nTest:]...)
	}

	return train, test, nil
}
