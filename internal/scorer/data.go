package scorer

// Scoring weights. They were tuned by hand; any change is a behavior change
// and needs new ranking baselines.
const (
	WeightSelf    = 420
	WeightContext = 220
	WeightLabel   = 340
	WeightForm    = 200

	BonusInForm       = 40
	BonusFormPassword = 120

	FormFieldWeight = 12
	FormFieldCap    = 90

	VisibleTextDivisor = 2
	VisibleTextCap     = 80

	BonusClickable = 30

	// applied only when the query asks for data entry
	BonusFieldIntent   = 240
	PenaltyFieldIntent = -400
	BonusPlaceholder   = 60
	WeightNameID       = 160
)

// Limits on the derived context texts.
const (
	ancestorLevels   = 3
	ancestorTextCap  = 200
	formSearchDepth  = 10
	formTextCap      = 600
	attrTextClassCap = 3
)

// Intent is what the query asks the element to do.
type Intent struct {
	WantsField bool
}

// Breakdown keeps every signal that went into a score so rankings can be
// explained and tested term by term.
type Breakdown struct {
	SimSelf    float64
	SimContext float64
	SimLabel   float64
	SimForm    float64
	SimNameID  float64

	InForm          bool
	FormHasPassword bool
	FormFieldCount  int

	TextField bool
	Select    bool
	Clickable bool

	WantsField bool

	Total int
}
