package copier

// Op identifies an operation that can fail on a single node during the
// copy pass.
type Op int

const (
	OpStat Op = iota
	OpMkdir
	OpListDir
	OpCompose // composed child path exceeds the length limit
	OpOpenSource
	OpCreateDest
	OpRead
	OpWrite
	OpSpecialEntry // entry is neither a regular file nor a directory
)

var opNames = map[Op]string{
	OpStat:         "stat",
	OpMkdir:        "mkdir",
	OpListDir:      "read dir",
	OpCompose:      "path too long",
	OpOpenSource:   "open source",
	OpCreateDest:   "open dest",
	OpRead:         "read",
	OpWrite:        "write",
	OpSpecialEntry: "special entry",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "unknown"
}

// Action says how a failed Op is handled.
type Action int

const (
	// Report writes the failure to the error stream and skips the
	// node; siblings continue. A Report on the root of a CopyTree
	// call additionally fails that call, since there is nothing left
	// to continue with.
	Report Action = iota
	// Ignore skips the node without comment.
	Ignore
)

// copyActions is the decision table for the copy pass: every failure
// is surfaced except unsupported entry kinds, which are stepped over
// silently. The scan pass has no table of its own because it ignores
// all failures (see internal/scan).
var copyActions = map[Op]Action{
	OpStat:         Report,
	OpMkdir:        Report,
	OpListDir:      Report,
	OpCompose:      Report,
	OpOpenSource:   Report,
	OpCreateDest:   Report,
	OpRead:         Report,
	OpWrite:        Report,
	OpSpecialEntry: Ignore,
}

func actionFor(op Op) Action {
	if a, ok := copyActions[op]; ok {
		return a
	}
	return Report
}
