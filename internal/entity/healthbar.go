package entity

import (
	"math"

	"github.com/vovakirdan/tui-rewind/internal/diag"
)

// snapEpsilon is how close the displayed value must get before snapping.
const snapEpsilon = 0.01

// Healthbar maps a health value to a smoothed progress display that is
// hidden while the value equals the maximum.
type Healthbar struct {
	max       float64
	displayed float64
	target    float64
	rate      float64
	visible   bool
}

// NewHealthbar creates a bar that eases toward its target at rate per second.
func NewHealthbar(rate float64) *Healthbar {
	return &Healthbar{rate: rate}
}

// Initialize sets the capacity, shows a full bar and hides it.
func (h *Healthbar) Initialize(maxValue, currentValue float64) {
	diag.Assert(h.rate != 0, "healthbar adjustment speed was 0")
	h.max = maxValue
	h.displayed = maxValue
	h.target = currentValue
	h.visible = false
}

// Update records a new target. The bar is visible iff the target differs
// from the maximum, including negative values.
func (h *Healthbar) Update(current float64) {
	h.target = current
	h.visible = h.target != h.max
}

// Tick eases the displayed value toward the target. Hidden bars do not animate.
func (h *Healthbar) Tick(dt float64) {
	if !h.visible {
		return
	}
	t := h.rate * dt
	if t > 1 {
		t = 1
	}
	h.displayed += (h.target - h.displayed) * t
	if math.Abs(h.target-h.displayed) < snapEpsilon {
		h.displayed = h.target
	}
}

// Visible reports whether the bar is shown.
func (h *Healthbar) Visible() bool { return h.visible }

// Value returns the displayed (smoothed) value.
func (h *Healthbar) Value() float64 { return h.displayed }

// Target returns the value the bar is easing toward.
func (h *Healthbar) Target() float64 { return h.target }

// Max returns the bar capacity.
func (h *Healthbar) Max() float64 { return h.max }

// Fraction returns the displayed fill in [0, 1].
func (h *Healthbar) Fraction() float64 {
	if h.max <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, h.displayed/h.max))
}
