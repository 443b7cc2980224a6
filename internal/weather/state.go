package weather

// Phase names the variant of a State.
type Phase string

const (
	PhaseLoading                Phase = "loading"
	PhaseError                  Phase = "error"
	PhaseAwaitingDisambiguation Phase = "awaiting_disambiguation"
	PhaseReady                  Phase = "ready"
)

// State is the orchestration state. It is exactly one of Loading, Failed,
// AwaitingDisambiguation or Ready.
type State interface {
	Phase() Phase
	sealed()
}

// Loading means a lookup is in progress, or nothing has been shown yet.
type Loading struct{}

// Failed ends a query with a user-facing message.
type Failed struct {
	Message string
}

// AwaitingDisambiguation holds two or more candidates, in the order the geocoder returned them.
type AwaitingDisambiguation struct {
	Candidates []Candidate
}

// Ready holds the forecast for a resolved location.
type Ready struct {
	LocationName string
	Snapshot     Snapshot
}

func (Loading) Phase() Phase                { return PhaseLoading }
func (Failed) Phase() Phase                 { return PhaseError }
func (AwaitingDisambiguation) Phase() Phase { return PhaseAwaitingDisambiguation }
func (Ready) Phase() Phase                  { return PhaseReady }

func (Loading) sealed()                {}
func (Failed) sealed()                 {}
func (AwaitingDisambiguation) sealed() {}
func (Ready) sealed()                  {}
