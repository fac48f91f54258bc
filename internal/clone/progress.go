package clone

// Stage identifies a named phase of a git transfer.
type Stage int

const (
	StageUnknown Stage = iota
	StageCounting
	StageCompressing
	StageReceiving
	StageResolving
)

var stageNames = map[Stage]string{
	StageUnknown:     "Unknown",
	StageCounting:    "Counting",
	StageCompressing: "Compressing",
	StageReceiving:   "Receiving",
	StageResolving:   "Resolving",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Operation signal bits. A signal carries at most one stage bit plus,
// orthogonally, OpEnd when the stage has finished.
const (
	OpBegin       = 1 << 0
	OpEnd         = 1 << 1
	OpCounting    = 1 << 2
	OpCompressing = 1 << 3
	OpWriting     = 1 << 4
	OpReceiving   = 1 << 5
	OpResolving   = 1 << 6
)

// stageTotal is the overall meter's total: one tick per named stage.
const stageTotal = 4

// stageTable maps signal bits to stages in priority order. The first mask
// that intersects the signal wins; bits with no entry, such as OpWriting,
// fall through to StageUnknown.
var stageTable = []struct {
	mask  int
	stage Stage
}{
	{OpCounting, StageCounting},
	{OpCompressing, StageCompressing},
	{OpReceiving, StageReceiving},
	{OpResolving, StageResolving},
}

// MatchOp decodes an operation signal into the stage it belongs to and
// whether that stage has finished. Signals with no recognized stage bit
// report StageUnknown.
func MatchOp(op int) (Stage, bool) {
	done := op&OpEnd != 0
	for _, entry := range stageTable {
		if op&entry.mask != 0 {
			return entry.stage, done
		}
	}
	return StageUnknown, done
}

// Event is one progress report decoded from the transfer stream.
type Event struct {
	// Op is the operation signal: a stage bit, possibly combined with OpEnd.
	Op int
	// Current is the number of objects processed so far.
	Current int64
	// Total is the expected number of objects, 0 when not yet known.
	Total int64
}
