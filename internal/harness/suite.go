package harness

// Node is an element of a Suite: either a *Suite or a *Case.
type Node interface {
	count() int
}

// Suite is an ordered, nestable collection of test cases.
type Suite struct {
	nodes []Node
}

// NewSuite creates a suite from the given nodes.
func NewSuite(nodes ...Node) *Suite {
	s := &Suite{}
	for _, n := range nodes {
		s.Add(n)
	}
	return s
}

// Add appends a case or a nested suite.
func (s *Suite) Add(n Node) {
	s.nodes = append(s.nodes, n)
}

// Count returns the number of leaf cases, descending into nested suites.
func (s *Suite) Count() int {
	total := 0
	for _, n := range s.nodes {
		total += n.count()
	}
	return total
}

func (s *Suite) count() int {
	return s.Count()
}

// Leaves flattens the suite into its leaf cases, preserving order.
func (s *Suite) Leaves() []*Case {
	var leaves []*Case
	for _, n := range s.nodes {
		switch v := n.(type) {
		case *Case:
			leaves = append(leaves, v)
		case *Suite:
			leaves = append(leaves, v.Leaves()...)
		}
	}
	return leaves
}
