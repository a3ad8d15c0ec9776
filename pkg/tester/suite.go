package tester

// Suite groups related checks behind one named run. Implementations register
// their checks in Run; the engine handles isolation and reporting.
type Suite interface {
	Name() string
	Run(t *Tester) error
}

// SetupSuite is optionally implemented by suites that need per-run setup.
type SetupSuite interface {
	Setup()
}

// RunSuite executes s as a named run on this Tester. Setup, when implemented,
// runs before the suite body inside the same isolated scope.
func (t *Tester) RunSuite(s Suite) {
	t.Run(s.Name(), func(sub *Tester) error {
		if setup, ok := s.(SetupSuite); ok {
			setup.Setup()
		}
		return s.Run(sub)
	})
}
