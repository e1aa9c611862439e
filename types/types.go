package types

// Status represents the outcome of a case, a group or a whole run
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Stats tracks case counts at run and group level
type Stats struct {
	Total  int
	Passed int
	Failed int
}

// FailureRecord carries everything the reporting layer needs to print one
// case failure: where the case was declared, how the program was invoked,
// what came back and why it was rejected.
type FailureRecord struct {
	Group     string   // group identifier, the first invocation argument
	Label     string   // diagnostic case label from the fixture header line
	Arguments []string // tokens appended after the group identifier
	Output    string   // combined stdout+stderr, may be empty
	Reason    string
	Diff      string // expected/actual diff for value mismatches, may be empty
}
