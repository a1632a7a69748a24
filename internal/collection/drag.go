package collection

// DragState is the single process-wide drag slot. Starting a new drag
// implicitly invalidates any previous one; ending a drag, with or without a
// drop, clears both the payload and the resolved target unconditionally.
//
// The client is single-threaded (Fyne event loop), so no locking is needed;
// the slot exists to make the one-active-drag invariant explicit instead of
// scattering globals.
type DragState struct {
	payload *DragPayload
	target  *DropTarget
}

// Start begins a new drag, replacing whatever drag was in flight.
func (s *DragState) Start(p DragPayload) {
	s.payload = &p
	s.target = nil
}

// SetTarget records the currently resolved drop target. Invalid targets are
// filtered by the caller with AllowDrop before reaching here.
func (s *DragState) SetTarget(t DropTarget) {
	if s.payload == nil {
		return
	}
	s.target = &t
}

// ClearTarget removes the active target while the drag continues, e.g. when
// the pointer leaves every row or hovers an invalid pairing.
func (s *DragState) ClearTarget() {
	s.target = nil
}

// Active reports whether a drag is in flight.
func (s *DragState) Active() bool { return s.payload != nil }

// Payload returns the in-flight drag payload, or nil.
func (s *DragState) Payload() *DragPayload { return s.payload }

// Target returns the currently resolved drop target, or nil.
func (s *DragState) Target() *DropTarget { return s.target }

// End clears the drag slot. Called on drop, on drag-end without a drop, on
// escape, and on any dismissing click; it never issues a persistence call.
func (s *DragState) End() {
	s.payload = nil
	s.target = nil
}
