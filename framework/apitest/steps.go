package apitest

import (
	"fmt"
	"sort"
	"strings"
)

// Condition is a named predicate over the state of a test run, such as "an identity is
// authenticated". Steps declare which conditions they need, establish, or revoke.
type Condition struct {
	Name  string
	Check func() bool
}

// Step is a top-level test whose position in the run is determined by the conditions it
// declares rather than by hand.
type Step struct {
	Name string

	// Needs lists the conditions that must hold when the step starts. If any of them does
	// not hold at run time, the step is skipped.
	Needs []Condition

	// Establishes names the conditions that the step makes true when it succeeds.
	Establishes []string

	// Revokes names the conditions that the step makes false.
	Revokes []string

	Action func(*T)
}

// OrderSteps returns the steps in an order where every step that establishes a condition comes
// before every step that needs it, and every step that needs a condition comes before every
// step that revokes it. Among steps that are not constrained relative to each other, the
// declaration order is kept.
//
// It returns an error if a step needs a condition that no step establishes, or if the
// constraints are cyclic.
func OrderSteps(steps []Step) ([]Step, error) {
	establishers := make(map[string][]int)
	revokers := make(map[string][]int)
	for i, s := range steps {
		for _, c := range s.Establishes {
			establishers[c] = append(establishers[c], i)
		}
		for _, c := range s.Revokes {
			revokers[c] = append(revokers[c], i)
		}
	}

	edges := make([]map[int]bool, len(steps))
	inDegree := make([]int, len(steps))
	addEdge := func(from, to int) {
		if from == to {
			return
		}
		if edges[from] == nil {
			edges[from] = make(map[int]bool)
		}
		if !edges[from][to] {
			edges[from][to] = true
			inDegree[to]++
		}
	}
	for i, s := range steps {
		for _, need := range s.Needs {
			ests, ok := establishers[need.Name]
			if !ok {
				return nil, fmt.Errorf("step %q needs condition %q, which no step establishes", s.Name, need.Name)
			}
			for _, e := range ests {
				addEdge(e, i)
			}
			for _, r := range revokers[need.Name] {
				addEdge(i, r)
			}
		}
	}

	ret := make([]Step, 0, len(steps))
	done := make([]bool, len(steps))
	for len(ret) < len(steps) {
		next := -1
		for i := range steps {
			if !done[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i, s := range steps {
				if !done[i] {
					stuck = append(stuck, s.Name)
				}
			}
			sort.Strings(stuck)
			return nil, fmt.Errorf("steps have cyclic preconditions: %s", strings.Join(stuck, ", "))
		}
		done[next] = true
		ret = append(ret, steps[next])
		for to := range edges[next] {
			inDegree[to]--
		}
	}
	return ret, nil
}

// RunSteps orders the steps with OrderSteps and runs each one as a subtest. A step whose
// preconditions are not met when its turn comes is skipped. If the steps cannot be ordered,
// this test fails and nothing is run.
func (t *T) RunSteps(steps []Step) {
	ordered, err := OrderSteps(steps)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range ordered {
		s := s
		t.Run(s.Name, func(t *T) {
			for _, need := range s.Needs {
				if need.Check != nil && !need.Check() {
					t.SkipWithReason(fmt.Sprintf("precondition %q not met", need.Name))
				}
			}
			s.Action(t)
		})
	}
}
