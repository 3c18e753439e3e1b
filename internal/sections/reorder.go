package sections

// Reorderer applies drag-and-drop style moves to a section order.
// Moves that keep the order ATS-compatible apply immediately; moves that
// drop a required section are staged and must be confirmed or discarded
// before the next proposal.
type Reorderer struct {
	order  []Type
	staged []Type
}

// NewReorderer starts from the given order, or the default order when nil.
func NewReorderer(order []Type) *Reorderer {
	if order == nil {
		order = DefaultOrder()
	}
	return &Reorderer{order: append([]Type(nil), order...)}
}

// Order returns a copy of the currently applied order.
func (r *Reorderer) Order() []Type {
	return append([]Type(nil), r.order...)
}

// Pending reports whether an incompatible order is staged awaiting confirmation.
func (r *Reorderer) Pending() bool {
	return r.staged != nil
}

// Staged returns a copy of the staged order, or nil when nothing is pending.
func (r *Reorderer) Staged() []Type {
	if r.staged == nil {
		return nil
	}
	return append([]Type(nil), r.staged...)
}

// ProposeMove moves the section at index from to index to. The returned
// applied flag is false when the resulting order would lose an ATS-required
// section; the proposal is then staged until Confirm or Discard.
func (r *Reorderer) ProposeMove(from, to int) (applied bool, err error) {
	next, err := Move(r.order, from, to)
	if err != nil {
		return false, err
	}
	return r.Propose(next), nil
}

// Propose offers a complete replacement order. Compatible orders apply
// immediately, incompatible ones are staged.
func (r *Reorderer) Propose(next []Type) (applied bool) {
	if IsATSCompatible(next) {
		r.order = append([]Type(nil), next...)
		r.staged = nil
		return true
	}
	r.staged = append([]Type(nil), next...)
	return false
}

// Confirm applies the staged order despite the ATS warning.
func (r *Reorderer) Confirm() {
	if r.staged == nil {
		return
	}
	r.order = r.staged
	r.staged = nil
}

// Discard drops the staged order and keeps the current one.
func (r *Reorderer) Discard() {
	r.staged = nil
}
