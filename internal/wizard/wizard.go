// Package wizard tracks which of the four setup steps is active and decides
// whether the operator may move between them.
package wizard

// Step is a 1-based wizard position.
type Step int

const (
	AddVendor Step = iota + 1
	UploadPriceSheet
	GenerateGuide
	ViewGuide
)

const (
	First = AddVendor
	Last  = ViewGuide
)

// Guidance messages shown when a step's precondition does not hold.
const (
	MsgNeedVendor     = "Please add at least one vendor first."
	MsgNeedPriceSheet = "Please upload at least one price sheet first."
	MsgNeedGuide      = "Please generate the order guide first."
)

var labels = map[Step]string{
	AddVendor:        "Add Vendor",
	UploadPriceSheet: "Upload Price Sheet",
	GenerateGuide:    "Generate Guide",
	ViewGuide:        "View Guide",
}

func (s Step) String() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return "Unknown"
}

func (s Step) Valid() bool { return s >= First && s <= Last }

// Status of a step relative to the current one.
type Status string

const (
	StatusDone    Status = "done"
	StatusCurrent Status = "current"
	StatusPending Status = "pending"
)

// Indicator is one entry of the step strip.
type Indicator struct {
	Step   Step
	Label  string
	Status Status
}

// State is what the controller needs to know about the session.
type State interface {
	VendorCount() int
	PriceSheetCount() int
	HasGuide() bool
}

// Controller starts at AddVendor.
type Controller struct {
	state   State
	current Step
}

func New(state State) *Controller {
	return &Controller{state: state, current: First}
}

func (c *Controller) Current() Step { return c.current }

// Reset returns to the first step.
func (c *Controller) Reset() { c.current = First }

// requirement returns the guidance message when step cannot be entered.
func (c *Controller) requirement(step Step) string {
	switch step {
	case UploadPriceSheet:
		if c.state.VendorCount() == 0 {
			return MsgNeedVendor
		}
	case GenerateGuide:
		if c.state.PriceSheetCount() == 0 {
			return MsgNeedPriceSheet
		}
	case ViewGuide:
		if !c.state.HasGuide() {
			return MsgNeedGuide
		}
	}
	return ""
}

// Next advances one step. When the next step's precondition is unmet the
// step is unchanged and its guidance message is returned.
func (c *Controller) Next() string {
	if c.current == Last {
		return ""
	}
	target := c.current + 1
	if msg := c.requirement(target); msg != "" {
		return msg
	}
	c.current = target
	return ""
}

// Back moves one step toward the start. It is never blocked.
func (c *Controller) Back() {
	if c.current > First {
		c.current--
	}
}

// Guard reports the current step's guidance message if its precondition no
// longer holds, e.g. after a reset.
func (c *Controller) Guard() string {
	return c.requirement(c.current)
}

// Jump walks toward target one step at a time and stops at the first
// blocked transition.
func (c *Controller) Jump(target Step) string {
	if !target.Valid() {
		return ""
	}
	for c.current > target {
		c.Back()
	}
	for c.current < target {
		if msg := c.Next(); msg != "" {
			return msg
		}
	}
	return ""
}

// Progress is the completed fraction, 0 at the first step.
func (c *Controller) Progress() float64 {
	return float64(c.current-First) * 0.25
}

func (c *Controller) Steps() []Indicator {
	out := make([]Indicator, 0, int(Last))
	for s := First; s <= Last; s++ {
		st := StatusPending
		switch {
		case s < c.current:
			st = StatusDone
		case s == c.current:
			st = StatusCurrent
		}
		out = append(out, Indicator{Step: s, Label: s.String(), Status: st})
	}
	return out
}
